/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Console logs go to stderr: stdout carries command output such as
// generated passwords.
var consoleOut io.Writer = os.Stderr

func NewFallbackLogger(level zapcore.Level) *zap.Logger {
	core := newTerminalConsoleCore(zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(consoleOut)),
		level,
	), terminalWriter())
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback installs a console logger teed with a JSON log
// file when a writable log path exists. level is parsed with ParseLogLevel;
// an empty level falls back to $LOG_LEVEL.
func InitializeWithFallback(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl := ParseLogLevel(level)

	path, err := FindWritableLogPath()
	if err != nil {
		SetLogger(NewFallbackLogger(lvl))
		L().Debug("No writable log path found, logging to console only")
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Could not write to log file, logging to console only:", err)
		SetLogger(NewFallbackLogger(lvl))
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		newTerminalConsoleCore(zapcore.NewCore(
			zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
			zapcore.Lock(zapcore.AddSync(consoleOut)),
			lvl,
		), terminalWriter()),
		fileCore{zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, min(lvl, zapcore.InfoLevel))},
	)

	SetLogger(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	L().Debug("Logger initialized",
		zap.String("log_level", lvl.String()),
		zap.String("log_path", path),
	)
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
