package utils

import (
	"strings"

	"go.uber.org/zap"
)

// SetupLogger builds the development logger at the given level. An empty or unknown
// level falls back to info.
func SetupLogger(level string) *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	if atomicLevel, err := zap.ParseAtomicLevel(strings.ToLower(level)); err == nil && level != "" {
		config.Level = atomicLevel
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger := zap.Must(config.Build())
	return logger.Sugar()
}
