package server

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/yago-123/burrow-rendez/pkg/rendez/types"
)

const (
	ServerReadTimeout  = 5 * time.Second
	ServerWriteTimeout = 5 * time.Second
	ServerIdleTimeout  = 10 * time.Second
	MaxHeaderBytes     = 1 << 20
)

// CORSConfig describes the cross-origin policy. A "*" entry in AllowOrigins or AllowMethods
// allows everything.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// DefaultCORSConfig lets any browser origin talk to the rendezvous server
var DefaultCORSConfig = CORSConfig{
	AllowOrigins:     []string{"*"},
	AllowMethods:     []string{"*"},
	AllowHeaders:     []string{"*"},
	AllowCredentials: true,
}

var allMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

type config struct {
	codeField      string
	cors           CORSConfig
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	logger         logr.Logger
}

func newDefaultConfig() *config {
	return &config{
		codeField:      types.DefaultCodeField,
		cors:           DefaultCORSConfig,
		readTimeout:    ServerReadTimeout,
		writeTimeout:   ServerWriteTimeout,
		idleTimeout:    ServerIdleTimeout,
		maxHeaderBytes: MaxHeaderBytes,
		logger:         logr.Discard(),
	}
}

type Option func(*config)

// WithCodeField sets the name of the JSON field carrying the peer code in /register bodies
func WithCodeField(field string) Option {
	return func(cfg *config) {
		if field != "" {
			cfg.codeField = field
		}
	}
}

// WithCORS replaces the cross-origin policy
func WithCORS(cors CORSConfig) Option {
	return func(cfg *config) {
		cfg.cors = cors
	}
}

// WithTimeouts sets the HTTP server read, write and idle timeouts. Zero values keep the defaults
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(cfg *config) {
		if read > 0 {
			cfg.readTimeout = read
		}
		if write > 0 {
			cfg.writeTimeout = write
		}
		if idle > 0 {
			cfg.idleTimeout = idle
		}
	}
}

// WithLogger sets the logger to use for logging. The logger must implement the logr.Logger interface
func WithLogger(logger logr.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
