package internal

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
)

// NewConsoleLogger writes bare messages: info (and debug when enabled) to stdout,
// warnings and errors to stderr.
func NewConsoleLogger(stdout, stderr io.Writer, debug bool) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:  "msg",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.ISO8601TimeEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	minLevel := zapcore.InfoLevel
	if debug {
		minLevel = zapcore.DebugLevel
	}

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.WarnLevel
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	return zap.New(zapcore.NewTee(stdoutCore, stderrCore))
}

func InitLogger(debug bool) *zap.Logger {
	logger := NewConsoleLogger(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr), debug)
	zap.ReplaceGlobals(logger)
	return logger
}
