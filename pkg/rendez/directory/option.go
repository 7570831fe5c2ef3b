package directory

import "github.com/go-logr/logr"

type config struct {
	logger logr.Logger
}

func newDefaultConfig() *config {
	return &config{
		logger: logr.Discard(),
	}
}

type Option func(*config)

// WithLogger sets the logger that receives a record for every registration
func WithLogger(logger logr.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
