package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Production refuses to start without a JWT secret and
// an explicit database password; other environments only need the fields the
// server cannot run without.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
	}
	for field, value := range required {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s must not be empty", field))
		}
	}

	if cfg.JWTSecret == "" && !IsDevelopment() {
		errs = append(errs, "JWT_SECRET (or jwt_secret secret) is required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errs = append(errs, "DB_PASSWORD must be set explicitly in production")
		}
		if cfg.DBSSLMode == "disable" {
			errs = append(errs, "DB_SSL_MODE must not be disable in production")
		}
	}

	if cfg.Limits.DefaultPageSize < 1 || cfg.Limits.MaxPageSize < cfg.Limits.DefaultPageSize {
		errs = append(errs, "pagination limits are inconsistent")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
