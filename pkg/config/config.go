package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server:  DefaultServerConfig,
		CORS:    cloneCORS(DefaultCORSConfig),
		Store:   DefaultStoreConfig,
		Logging: DefaultLoggingConfig,
	}
}

// LoadConfig reads the YAML file at path on top of the defaults, applies environment
// overrides and validates the result. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(config, lookupEnv); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, fmt.Errorf("config validation failed: %w", err))
	}

	return config, nil
}

func applyEnv(c *Config, lookupEnv func(string) (string, bool)) error {
	if raw, ok := lookupEnv(EnvPort); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("environment variable %s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}

	return nil
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type raw Config
	r := raw{
		Server:  DefaultServerConfig,
		CORS:    cloneCORS(DefaultCORSConfig),
		Store:   DefaultStoreConfig,
		Logging: DefaultLoggingConfig,
	}

	if err := value.Decode(&r); err != nil {
		return err
	}

	*c = Config(r)

	return nil
}

// Addr returns the host:port the server listens on
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func cloneCORS(c CORSConfig) CORSConfig {
	return CORSConfig{
		AllowOrigins:     append([]string(nil), c.AllowOrigins...),
		AllowMethods:     append([]string(nil), c.AllowMethods...),
		AllowHeaders:     append([]string(nil), c.AllowHeaders...),
		AllowCredentials: c.AllowCredentials,
	}
}
