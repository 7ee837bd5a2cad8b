// Package logger holds the process-wide zap logger.
package logger

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the shared sugared logger. It is a no-op until Init is called, so
// packages can log freely from tests.
var L = zap.NewNop().Sugar()

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	z, err := cfg.Build()
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	L = z.Sugar()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L.Sync()
}

// With returns a child of L carrying the given key/value pairs.
func With(args ...interface{}) *zap.SugaredLogger {
	return L.With(args...)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
