package middleware

import (
	"UserPrefs/internal/metrics"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// WithMetrics учитывает запросы в prometheus по шаблону маршрута chi.
func WithMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := newLoggingResponseWriter(w)
			next.ServeHTTP(lw, r)

			route := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(r.Method, route, lw.data.statusOrOK(), time.Since(start))
		})
	}
}
