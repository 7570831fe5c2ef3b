package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

type mockConfig struct {
	serverErr  error
	corsErr    error
	storeErr   error
	loggingErr error
}

func (m *mockConfig) validateServerConfig() error  { return m.serverErr }
func (m *mockConfig) validateCORSConfig() error    { return m.corsErr }
func (m *mockConfig) validateStoreConfig() error   { return m.storeErr }
func (m *mockConfig) validateLoggingConfig() error { return m.loggingErr }

func noEnv(string) (string, bool) { return "", false }

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    Validator
		expectErr bool
	}{
		{"success", &mockConfig{}, false},
		{"server error", &mockConfig{serverErr: fmt.Errorf("validation failed")}, true},
		{"cors error", &mockConfig{corsErr: fmt.Errorf("validation failed")}, true},
		{"store error", &mockConfig{storeErr: fmt.Errorf("validation failed")}, true},
		{"logging error", &mockConfig{loggingErr: fmt.Errorf("validation failed")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validateConfig(test.config)
			if (result != nil) != test.expectErr {
				t.Errorf("Expected error: %v, got: %v", test.expectErr, result)
			}
		})
	}
}

func TestValidateFields(t *testing.T) {
	withServer := func(mut func(*ServerConfig)) *Config {
		c := Default()
		mut(&c.Server)
		return c
	}
	withOrigins := func(origins ...string) *Config {
		c := Default()
		c.CORS.AllowOrigins = origins
		return c
	}

	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default config", Default(), ""},
		{"empty config", nil, fmt.Sprintf(fmtErrEmptyConfig, "config")},
		{"port zero", withServer(func(s *ServerConfig) { s.Port = 0 }), "server.port"},
		{"port too large", withServer(func(s *ServerConfig) { s.Port = 70000 }), "server.port"},
		{"empty code field", withServer(func(s *ServerConfig) { s.CodeField = "" }), fmt.Sprintf(fmtErrEmptyConfigOption, "server.code_field")},
		{"negative timeout", withServer(func(s *ServerConfig) { s.ReadTimeout = -time.Second }), "timeouts"},
		{"origin without scheme", withOrigins("burrow.example"), fmt.Sprintf(fmtErrInvalidOption, "cors.allow_origins", "burrow.example")},
		{"second origin without scheme", withOrigins("https://burrow.example", "ftp://burrow.example"), "cors.allow_origins"},
		{"explicit origins", withOrigins("https://burrow.example", "http://localhost:3000"), ""},
		{"no origins", withOrigins(), ""},
		{"empty backend", &Config{Server: DefaultServerConfig, Logging: DefaultLoggingConfig}, fmt.Sprintf(fmtErrEmptyConfigOption, "store.backend")},
		{"unknown backend", &Config{Server: DefaultServerConfig, Store: StoreConfig{Backend: "redis"}, Logging: DefaultLoggingConfig}, "store.backend"},
		{"bad log level", &Config{Server: DefaultServerConfig, Store: DefaultStoreConfig, Logging: LoggingConfig{Level: "loud", Format: "text"}}, "logging.level"},
		{"bad log format", &Config{Server: DefaultServerConfig, Store: DefaultStoreConfig, Logging: LoggingConfig{Level: "info", Format: "xml"}}, "logging.format"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validateConfig(test.config)

			if test.expected == "" {
				if result != nil {
					t.Errorf("Expected no error, got '%v'", result)
				}
			} else {
				if result == nil {
					t.Errorf("Expected error containing %q, got nil", test.expected)
				} else if !strings.Contains(result.Error(), test.expected) {
					t.Errorf("Expected error containing %q, got %v", test.expected, result)
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", noEnv)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, "peerCode", cfg.Server.CodeField)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 7777
  code_field: peer_code
  read_timeout: 2s
cors:
  allow_origins: ["https://burrow.example"]
  allow_credentials: false
store:
  backend: leveldb
logging:
  level: debug
`)

	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "peer_code", cfg.Server.CodeField)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultServerConfig.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://burrow.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowMethods)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, "leveldb", cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 7777\n")

	cfg, err := load(path, env(map[string]string{EnvPort: "9090"}))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)

	cfg, err = load("", env(map[string]string{EnvPort: ""}))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig.Port, cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		lookup func(string) (string, bool)
		isCfg  bool
	}{
		{"missing file", filepath.Join(t.TempDir(), "missing.yaml"), noEnv, false},
		{"malformed yaml", writeConfig(t, "server: [1, 2"), noEnv, false},
		{"invalid port env", "", env(map[string]string{EnvPort: "http"}), true},
		{"out of range port env", "", env(map[string]string{EnvPort: "0"}), true},
		{"invalid backend", writeConfig(t, "store:\n  backend: redis\n"), noEnv, true},
		{"origin without scheme", writeConfig(t, "cors:\n  allow_origins: [\"burrow.example\"]\n"), noEnv, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := load(test.path, test.lookup)
			require.Error(t, err)
			if test.isCfg {
				assert.ErrorIs(t, err, errors.ErrInvalidConfig)
			}
		})
	}
}
