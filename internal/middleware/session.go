package middleware

import (
	"UserPrefs/internal/session"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName: имя cookie с подписанной сессией.
const SessionCookieName = "session_token"

type ctxKey int

const sessionKey ctxKey = iota

// Claims: содержимое JWT сессии.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// SetSessionCookie подписывает имя пользователя и кладёт его в cookie.
func SetSessionCookie(w http.ResponseWriter, username, secret string, ttl time.Duration) error {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie удаляет cookie сессии.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ParseSessionToken проверяет подпись и срок токена и возвращает имя пользователя.
func ParseSessionToken(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Username == "" {
		return "", errors.New("invalid session token")
	}
	return claims.Username, nil
}

// SessionFromContext возвращает сессию запроса. Без WithSession возвращает анонимную сессию.
func SessionFromContext(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(sessionKey).(*session.Session); ok {
		return s
	}
	return session.New("")
}

// sessionWriter переписывает cookie перед первой записью ответа, если сессия изменилась.
type sessionWriter struct {
	http.ResponseWriter
	sess      *session.Session
	secret    string
	ttl       time.Duration
	stale     bool // пришла невалидная cookie, её нужно удалить
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if !w.sess.Changed() {
		if w.stale {
			ClearSessionCookie(w.ResponseWriter)
		}
		return
	}
	if username, ok := w.sess.Username(); ok {
		if err := SetSessionCookie(w.ResponseWriter, username, w.secret, w.ttl); err != nil {
			sugar.Errorw("session: failed to set cookie", "error", err)
		}
		return
	}
	ClearSessionCookie(w.ResponseWriter)
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commit()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

// WithSession читает cookie сессии и кладёт *session.Session в контекст.
// Невалидный или просроченный токен даёт анонимную сессию, а cookie удаляется.
func WithSession(secret string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, stale := "", false
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				if name, err := ParseSessionToken(c.Value, secret); err == nil {
					username = name
				} else {
					sugar.Debugw("session: invalid token", "error", err)
					stale = true
				}
			}

			sess := session.New(username)
			sw := &sessionWriter{ResponseWriter: w, sess: sess, secret: secret, ttl: ttl, stale: stale}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
			sw.commit()
		})
	}
}
