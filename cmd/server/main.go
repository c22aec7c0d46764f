package main

import (
	"UserPrefs/internal/config"
	"UserPrefs/internal/handlers"
	"UserPrefs/internal/middleware"
	"UserPrefs/internal/repo"
	"UserPrefs/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	userRepo, storage, err := newUserRepository(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize storage", "error", err)
	}
	userService := service.NewUserService(userRepo, cfg.BcryptCost)

	// первая загрузка создаёт пустое хранилище и не даёт стартовать с повреждённым
	store, err := userService.Open(ctx)
	if err != nil {
		sugar.Fatalw("failed to load users", "storage", storage, "error", err)
	}

	h := handlers.NewHandler(userService, sugar, cfg)
	h.Metrics.SetUsers(store.Len())

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"Storage", storage,
		"BcryptCost", cfg.BcryptCost,
		"SessionTTL", cfg.SessionTTL,
		"EnableGzip", cfg.EnableGzip,
	)
	sugar.Infow("Starting server", "addr", cfg.BaseURL, "users", store.Len())

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newUserRepository выбирает хранилище: БД, если задан DATABASE_URI, иначе JSON-файл.
func newUserRepository(cfg *config.Config) (repo.UserRepository, string, error) {
	if cfg.DatabaseDSN == "" {
		return repo.NewFileUserRepository(cfg.UsersFile), "file:" + cfg.UsersFile, nil
	}
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, "", err
	}
	return repo.NewGormUserRepository(db), "database", nil
}
