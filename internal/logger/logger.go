// Package logger provides process logging for the Arke MCP server.
// Output always goes to stderr by default; stdout carries the MCP stdio
// transport and must stay clean. Warnings and errors are always written.
// Debug and info messages appear when verbose mode is enabled via --verbose
// or when the configured level allows them.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	floor   = zapcore.WarnLevel
	level   = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	base    = build(os.Stderr)
)

// build creates a console logger writing to w at the shared level.
// Timestamps are omitted; the MCP client or supervisor adds its own.
func build(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(floor)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the non-verbose level from its name (debug, info, warn, error).
// Unknown names leave the level unchanged and return an error.
func SetLevel(name string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return fmt.Errorf("unknown log level %q", name)
	}

	mu.Lock()
	defer mu.Unlock()
	floor = lvl
	if !verbose {
		level.SetLevel(lvl)
	}
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = build(w)
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a structured logger carrying the given key/value pairs.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return L().Sugar().With(keysAndValues...)
}

// Debug logs a formatted debug message.
func Debug(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	L().Sugar().Debugf("=== %s ===", name)
}

// Info logs a formatted informational message.
func Info(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Warn logs a formatted warning.
func Warn(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}

// Error logs a formatted error.
func Error(format string, args ...any) {
	L().Sugar().Errorf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}
