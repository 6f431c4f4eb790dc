package config

import (
	"fmt"
	"os"
)

// Config carries every runtime setting the service needs. It is loaded once
// in main and handed down explicitly; no package reads the environment on its
// own after startup.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret     string
	AdminPassword string

	Currency string

	PaymentAPIURL string
	PaymentAPIKey string
	PaymentMode   string // "live" or "sandbox"

	RedisAddr string // optional, empty disables the catalog cache
	AmqpURL   string // optional, empty disables event publishing
}

// Load reads the configuration from the environment and validates the
// required settings.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Currency:      getEnv("CURRENCY", "EUR"),
		PaymentAPIURL: os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),
		PaymentMode:   getEnv("PAYMENT_MODE", "live"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AmqpURL:       os.Getenv("RABBITMQ_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is not set")
	}
	if cfg.PaymentAPIURL == "" || cfg.PaymentAPIKey == "" {
		return nil, fmt.Errorf("payment provider configuration missing")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
