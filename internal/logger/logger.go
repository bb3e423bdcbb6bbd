// Package logger builds the structured reporting sink for qafinal.
// Every check reports through an injected *zap.Logger: mismatches at
// WARN, matches and summaries at INFO, fetch failures at ERROR. When
// verbose mode is enabled via the --verbose flag, debug messages are
// emitted as well.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// bannerWidth is the width of section banners.
const bannerWidth = 100

// Options configures a logger.
type Options struct {
	// Level is the minimum level (debug, info, warn, error). Defaults to info.
	Level string

	// Format is "console" or "json". Defaults to console.
	Format string

	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer

	// Verbose lowers the level to debug regardless of Level.
	Verbose bool
}

// New creates a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format: %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Section logs the banner that precedes each check.
func Section(log *zap.Logger, name string) {
	banner := strings.Repeat("=", bannerWidth)
	log.Info(banner)
	log.Info("Starting execution of " + name)
	log.Info(banner)
}
