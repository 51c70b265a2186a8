package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init initializes the global structured logger. In release mode it emits
// JSON suitable for log collection, otherwise a human-readable console format.
func Init(mode string) {
	once.Do(func() {
		var err error
		if mode == "release" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			logger = zap.NewNop()
		}
	})
}

// L returns the global logger instance.
func L() *zap.Logger {
	if logger == nil {
		Init("debug")
	}
	return logger
}

// Sync flushes any buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
