// pkg/logger/logger.go

package logger

import (
	"strings"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// L returns the global logger. Before initialisation it returns a no-op
// logger so library code never has to nil-check.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// SetLogger installs l as the global logger and as the zap and otelzap
// globals, so otelzap.Ctx(ctx) logs through it. A nil logger resets them.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		// Syncing a terminal returns EINVAL on Linux; there is nothing useful to do with it.
		_ = l.Sync()
	}
}

// ParseLogLevel maps LOG_LEVEL style names to zap levels. Unknown or
// empty values mean Info.
func ParseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	case "DPANIC":
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}
