package client

import (
	"net/http"

	"github.com/go-logr/logr"

	"github.com/yago-123/burrow-rendez/pkg/rendez/types"
)

type config struct {
	httpClient *http.Client
	codeField  string
	logger     logr.Logger
}

func newDefaultConfig() *config {
	return &config{
		httpClient: &http.Client{Timeout: RendezvousClientTimeout},
		codeField:  types.DefaultCodeField,
		logger:     logr.Discard(),
	}
}

type Option func(*config)

// WithHTTPClient replaces the HTTP client used to reach the rendezvous server
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = httpClient
	}
}

// WithCodeField sets the JSON field used to send the peer code. Must match the server setting
func WithCodeField(field string) Option {
	return func(cfg *config) {
		cfg.codeField = field
	}
}

// WithLogger sets the logger to use for logging. The logger must implement the logr.Logger interface
func WithLogger(logger logr.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
