package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig rejects configurations that cannot possibly run.
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q (supported: postgres, sqlite)", cfg.DBDriver)}
	}

	if cfg.DBDriver == "sqlite" && cfg.SQLitePath == "" {
		return ValidationError{Field: "SQLITE_PATH", Message: "required for the sqlite driver"}
	}

	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == "dev-secret" {
			return ValidationError{Field: "JWT_SECRET", Message: "a real secret is required in production"}
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
		}
	}

	return nil
}
