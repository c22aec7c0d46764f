package handlers_test

import (
	"UserPrefs/internal/config"
	"UserPrefs/internal/handlers"
	"UserPrefs/internal/model"
	"UserPrefs/internal/repo"
	"UserPrefs/internal/service"
	"context"
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Load(ctx context.Context) (*model.Users, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).(*model.Users); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, users *model.Users) error {
	return m.Called(ctx, users).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		BcryptCost:    bcrypt.MinCost,
		EnableGzip:    true,
	}
}

func newRouter(t *testing.T, r repo.UserRepository) *handlers.Handler {
	t.Helper()
	cfg := testConfig()
	return handlers.NewHandler(service.NewUserService(r, cfg.BcryptCost), zap.NewNop().Sugar(), cfg)
}

// testClient: браузер с cookie jar поверх httptest.Server.
type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newFileClient(t *testing.T) (*testClient, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return newClient(t, newRouter(t, repo.NewFileUserRepository(path))), path
}

func newClient(t *testing.T, h *handlers.Handler) *testClient {
	t.Helper()
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, server: srv, client: &http.Client{Jar: jar}}
}

func (c *testClient) get(path string) (int, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.server.URL + path)
	require.NoError(c.t, err)
	return readBody(c.t, resp)
}

func (c *testClient) post(form url.Values) (int, string) {
	c.t.Helper()
	resp, err := c.client.PostForm(c.server.URL+"/", form)
	require.NoError(c.t, err)
	return readBody(c.t, resp)
}

// postMultipart отправляет форму как multipart/form-data.
func (c *testClient) postMultipart(form url.Values) (int, string) {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range form {
		for _, v := range values {
			require.NoError(c.t, mw.WriteField(key, v))
		}
	}
	require.NoError(c.t, mw.Close())

	resp, err := c.client.Post(c.server.URL+"/", mw.FormDataContentType(), &buf)
	require.NoError(c.t, err)
	return readBody(c.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func registerForm(username, password, bg, font string) url.Values {
	return url.Values{
		"action":     {"register"},
		"username":   {username},
		"password":   {password},
		"bg_color":   {bg},
		"font_color": {font},
	}
}

func loginForm(username, password string) url.Values {
	return url.Values{"action": {"login"}, "username": {username}, "password": {password}}
}
