package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBaseURL       = "localhost:8080"
	defaultUsersFile     = "users.json"
	defaultSessionSecret = "dev-secret-key"
	defaultSessionTTL    = 24 * time.Hour
)

type Config struct {
	BaseURL     string `env:"BASE_URL"`
	UsersFile   string `env:"USERS_FILE"`
	DatabaseDSN string `env:"DATABASE_URI"` // если задан, пользователи хранятся в БД, а не в файле

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	BcryptCost    int           `env:"BCRYPT_COST"`

	EnableGzip bool   `env:"ENABLE_GZIP" envDefault:"true"`
	LogLevel   string `env:"LOG_LEVEL"` // development | production
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги по умолчанию берут значения из env
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера host:port")
	flag.StringVar(&cfg.UsersFile, "users-file", cfg.UsersFile, "путь к JSON-файлу пользователей")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite:<path> или DSN Postgres)")
	flag.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "секрет для подписи cookie сессии")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "время жизни сессии")
	flag.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "стоимость bcrypt")
	flag.BoolVar(&cfg.EnableGzip, "gzip", cfg.EnableGzip, "сжимать ответы gzip")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "режим логгера: development | production")

	flag.Parse()

	// Defaults
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UsersFile == "" {
		cfg.UsersFile = defaultUsersFile
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = defaultSessionSecret
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.LogLevel != "production" {
		cfg.LogLevel = "development"
	}

	return cfg
}
