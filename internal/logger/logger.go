// Package logger builds the service's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named logger configured for the given environment:
// human-readable output in development, JSON in everything else.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	var cfg zap.Config
	if appEnv == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
