// Package errlog builds the process logger: human-readable console output
// plus a persistent error-log file that failures are appended to before the
// process reports them.
package errlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger teeing console output (stderr) with an
// append-only error-level file sink at path. The returned func flushes both
// sinks and is safe to defer.
func New(path string, verbose bool) (*zap.SugaredLogger, func(), error) {
	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	file := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(f),
		zapcore.ErrorLevel,
	)

	logger := zap.New(zapcore.NewTee(console, file))
	closer := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger.Sugar(), closer, nil
}
