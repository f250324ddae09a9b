package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr string
}

// RateLimitConfig tunes the per-IP token bucket guarding comment creation.
type RateLimitConfig struct {
	Rate  float64 // tokens per second
	Burst int
}

type AppConfig struct {
	ServiceName string
	Env         string
	LogLevel    string
	JWTSecret   string
	DatabaseURL string
	NATSURL     string
	HTTP        HTTPConfig
	CommentRate RateLimitConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		ServiceName: getenv("SERVICE_NAME"),
		Env:         getenv("APP_ENV"),
		LogLevel:    getenv("LOG_LEVEL"),
		JWTSecret:   getenv("JWT_SECRET"),
		DatabaseURL: getenv("DATABASE_URL"),
		NATSURL:     getenv("NATS_URL"),
		HTTP: HTTPConfig{
			Addr: getenv("HTTP_ADDR"),
		},
		CommentRate: RateLimitConfig{
			Rate:  envFloat("COMMENT_RATE_LIMIT", 0.5),
			Burst: envIntPositive("COMMENT_RATE_BURST", 5),
		},
	}
	if cfg.ServiceName == "" {
		return AppConfig{}, errors.New("SERVICE_NAME is required")
	}
	if cfg.JWTSecret == "" {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envFloat(key string, fallback float64) float64 {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func envIntPositive(key string, fallback int) int {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
