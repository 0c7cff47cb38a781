// Package logger builds the console's zap logger from the loaded config.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kaard/config"
)

const service = "kaard"

// New returns the process logger. LOG_FORMAT=console gives coloured
// human-readable lines; anything else is JSON on stdout. An unknown
// LOG_LEVEL means info.
func New(cfg config.AppConfig) (*zap.Logger, error) {
	return zapConfig(cfg).Build()
}

func zapConfig(cfg config.AppConfig) zap.Config {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stdout"}
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.LogFormat == "console" {
		zc.Encoding = "console"
		zc.Development = true
		zc.Sampling = nil
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.InitialFields = map[string]any{"service": service, "port": cfg.Port}
	return zc
}
