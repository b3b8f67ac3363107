package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger. prod emits JSON; local, dev,
// and docker get a human-readable console encoder. An optional level
// argument (debug, info, warn, error) overrides the profile's default.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	cfg, err := profile(env)
	if err != nil {
		return nil, err
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		level, err := zapcore.ParseLevel(levelOverride[0])
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", levelOverride[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	return cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

func profile(env string) (zap.Config, error) {
	switch env {
	case "prod":
		return zap.NewProductionConfig(), nil
	case "local", "dev", "docker":
		return zap.NewDevelopmentConfig(), nil
	default:
		return zap.Config{}, fmt.Errorf("no logger profile for environment %q", env)
	}
}
