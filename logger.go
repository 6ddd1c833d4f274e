package s7layout

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/s7layout/parser"
	"github.com/wippyai/s7layout/registry"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the logger of this package and of the parser and
// registry packages. This must be called before any parsing.
func SetLogger(l *zap.Logger) {
	logger = l
	parser.SetLogger(l.Named("parser"))
	registry.SetLogger(l.Named("registry"))
}
