package handlers

import (
	"UserPrefs/internal/config"
	"UserPrefs/internal/metrics"
	"UserPrefs/internal/middleware"
	"UserPrefs/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router  chi.Router
	Metrics *metrics.Metrics
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	m := metrics.New()
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics(m))
	if config.EnableGzip {
		r.Use(middleware.WithGzip)
	}
	r.Use(middleware.WithLogging)

	profileHandler := NewProfileHandler(userService, logger, m)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithSession(config.SessionSecret, config.SessionTTL))
		r.Get("/", profileHandler.Show)
		r.Post("/", profileHandler.Submit)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	// сжатие делает WithGzip
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{DisableCompression: true}))

	return &Handler{Router: r, Metrics: m}
}
