package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DBPath       string
	ServerPort   string
	LogLevel     string
	LogFormat    string
	GormLogLevel string
	BcryptCost   int
	AllowOrigins string
}

// LoadConfig reads the process environment, optionally seeded from a .env
// file. The returned config is always usable; a non-nil error reports values
// that were rejected and replaced by their defaults.
func LoadConfig(envFiles ...string) (*Config, error) {
	var errs []error
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("load env file: %w", err))
	}

	cfg := &Config{
		DBPath:       getEnv("DB_PATH", "study.db"),
		ServerPort:   getEnv("SERVER_PORT", "8000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		GormLogLevel: getEnv("GORM_LOG_LEVEL", "warn"),
		BcryptCost:   bcrypt.DefaultCost,
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}

	if raw := strings.TrimSpace(getEnv("BCRYPT_COST", "")); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			errs = append(errs, fmt.Errorf("invalid BCRYPT_COST %q", raw))
		} else {
			cfg.BcryptCost = cost
		}
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errs = append(errs, fmt.Errorf("invalid SERVER_PORT %q", cfg.ServerPort))
		cfg.ServerPort = "8000"
	}

	return cfg, errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
