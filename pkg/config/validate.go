package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	validateServerConfig() error
	validateCORSConfig() error
	validateStoreConfig() error
	validateLoggingConfig() error
}

func validateConfig(config Validator) error {
	if err := config.validateServerConfig(); err != nil {
		return err
	}

	if err := config.validateCORSConfig(); err != nil {
		return err
	}

	if err := config.validateStoreConfig(); err != nil {
		return err
	}

	return config.validateLoggingConfig()
}

func (c *Config) validateServerConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config field 'server.port' must be in the range 1-65535, got %d", c.Server.Port)
	}

	if c.Server.CodeField == "" {
		return fmt.Errorf(fmtErrEmptyConfigOption, "server.code_field")
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config server timeouts cannot be negative")
	}

	return nil
}

// validateCORSConfig rejects origins the CORS middleware cannot serve. An empty list is
// valid and disables cross-origin access.
func (c *Config) validateCORSConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	for _, origin := range c.CORS.AllowOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf(fmtErrInvalidOption, "cors.allow_origins", origin)
		}
	}

	return nil
}

func (c *Config) validateStoreConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	switch c.Store.Backend {
	case "memory", "leveldb":
		return nil
	case "":
		return fmt.Errorf(fmtErrEmptyConfigOption, "store.backend")
	default:
		return fmt.Errorf(fmtErrInvalidOption, "store.backend", c.Store.Backend)
	}
}

func (c *Config) validateLoggingConfig() error {
	if c == nil {
		return fmt.Errorf(fmtErrEmptyConfig, "config")
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf(fmtErrInvalidOption, "logging.level", c.Logging.Level)
	}

	switch c.Logging.Format {
	case constLogFormatText, constLogFormatJSON:
		return nil
	default:
		return fmt.Errorf(fmtErrInvalidOption, "logging.format", c.Logging.Format)
	}
}
