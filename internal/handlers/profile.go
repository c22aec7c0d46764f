package handlers

import (
	"UserPrefs/internal/metrics"
	"UserPrefs/internal/middleware"
	"UserPrefs/internal/model"
	"UserPrefs/internal/service"
	"UserPrefs/internal/session"
	"bytes"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const (
	defaultBgColor   = "#ffffff"
	defaultFontColor = "#000000"

	maxFormMemory = 1 << 20
)

// Сообщения страницы.
const (
	msgRegisterOK   = "Регистрация успешна!"
	msgUserExists   = "Пользователь уже существует!"
	msgInvalidInput = "Некорректный логин или пароль!"
	msgLoginOK      = "Вход успешен!"
	msgLoginFailed  = "Неверный логин или пароль!"
	msgLoggedOut    = "Вы вышли"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
	actionLogout   = "logout"
)

// ProfileHandler обслуживает страницу профиля: формы регистрации, входа и выхода.
type ProfileHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Metrics     *metrics.Metrics
}

// NewProfileHandler создаёт хендлер страницы профиля
func NewProfileHandler(userService *service.UserService, logger *zap.SugaredLogger, m *metrics.Metrics) *ProfileHandler {
	return &ProfileHandler{UserService: userService, Logger: logger, Metrics: m}
}

// Show отдаёт страницу для текущей сессии
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	store, ok := h.openStore(w, r)
	if !ok {
		return
	}
	h.render(w, store, middleware.SessionFromContext(r.Context()), "")
}

// Submit обрабатывает форму с полем action: register, login или logout
func (h *ProfileHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm сначала разбирает urlencoded-тело, ErrNotMultipart тогда не ошибка
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		// отсутствующие поля дальше считаются пустыми
		h.Logger.Warnw("Submit: invalid form", "error", err)
	}

	store, ok := h.openStore(w, r)
	if !ok {
		return
	}
	sess := middleware.SessionFromContext(r.Context())

	var (
		message string
		err     error
	)
	switch action := formValue(r, "action", ""); action {
	case actionRegister:
		message, err = h.register(r.Context(), store, r)
	case actionLogin:
		message = h.login(store, sess, r)
	case actionLogout:
		store.Logout(sess)
		h.Metrics.ObserveAction(actionLogout, metrics.ResultOK)
		message = msgLoggedOut
	default:
		h.Logger.Debugw("Submit: unknown action", "action", action)
	}
	if err != nil {
		h.Logger.Errorw("Submit: storage error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.render(w, store, sess, message)
}

func (h *ProfileHandler) register(ctx context.Context, store *service.UserStore, r *http.Request) (string, error) {
	username := formValue(r, "username", "")
	settings := model.Settings{
		BgColor:   formValue(r, "bg_color", defaultBgColor),
		FontColor: formValue(r, "font_color", defaultFontColor),
	}

	ok, err := store.Register(ctx, username, formValue(r, "password", ""), settings)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.Logger.Infow("Register: invalid input", "username", username, "error", err)
		h.Metrics.ObserveAction(actionRegister, metrics.ResultFail)
		return msgInvalidInput, nil
	case err != nil:
		h.Metrics.ObserveAction(actionRegister, metrics.ResultError)
		return "", err
	case !ok:
		h.Logger.Infow("Register: user exists", "username", username)
		h.Metrics.ObserveAction(actionRegister, metrics.ResultFail)
		return msgUserExists, nil
	}

	h.Logger.Infow("Register: user created", "username", username)
	h.Metrics.ObserveAction(actionRegister, metrics.ResultOK)
	h.Metrics.SetUsers(store.Len())
	return msgRegisterOK, nil
}

func (h *ProfileHandler) login(store *service.UserStore, sess *session.Session, r *http.Request) string {
	username := formValue(r, "username", "")
	if !store.Login(sess, username, formValue(r, "password", "")) {
		h.Logger.Infow("Login: invalid credentials", "username", username)
		h.Metrics.ObserveAction(actionLogin, metrics.ResultFail)
		return msgLoginFailed
	}
	h.Logger.Infow("Login: ok", "username", username)
	h.Metrics.ObserveAction(actionLogin, metrics.ResultOK)
	return msgLoginOK
}

func (h *ProfileHandler) openStore(w http.ResponseWriter, r *http.Request) (*service.UserStore, bool) {
	store, err := h.UserService.Open(r.Context())
	if err != nil {
		h.Logger.Errorw("open user store failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	h.Metrics.SetUsers(store.Len())
	return store, true
}

func (h *ProfileHandler) render(w http.ResponseWriter, store *service.UserStore, sess *session.Session, message string) {
	data := pageData{Message: message}
	if u, ok := store.CurrentUser(sess); ok {
		data.User = &u
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.Logger.Errorw("render page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// formValue возвращает поле POST-формы или def, если поля нет совсем.
// Пустое значение остаётся пустым.
func formValue(r *http.Request, key, def string) string {
	if vs, ok := r.PostForm[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return def
}
