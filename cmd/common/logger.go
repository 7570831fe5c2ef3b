package common

import (
	"fmt"
	"os"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewLogger builds the logrus logger used by the binaries together with its logr view,
// which is what the library packages accept
func NewLogger(level, format string) (*logrus.Logger, logr.Logger, error) {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, logr.Discard(), fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(l)

	switch format {
	case "", LogFormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, logr.Discard(), fmt.Errorf("invalid log format %q", format)
	}

	return logger, logrusr.New(logger), nil
}
