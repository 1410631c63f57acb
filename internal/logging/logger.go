package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Production uses JSON output; anything else
// gets the console encoder. level is a zap level name such as "debug" or "warn".
func New(env, level string) (*zap.Logger, error) {
	var loggerConfig zap.Config
	if env == "production" {
		loggerConfig = zap.NewProductionConfig()
	} else {
		loggerConfig = zap.NewDevelopmentConfig()
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		loggerConfig.Level = zap.NewAtomicLevelAt(lvl)
	}

	return loggerConfig.Build()
}
