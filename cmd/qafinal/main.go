package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nvdpcode/qa-final/internal/adapters/driven/config/file"
	"github.com/nvdpcode/qa-final/internal/adapters/driven/sources"
	"github.com/nvdpcode/qa-final/internal/adapters/driven/storage/sqlite"
	"github.com/nvdpcode/qa-final/internal/adapters/driving/cli"
	"github.com/nvdpcode/qa-final/internal/core/services"
	"github.com/nvdpcode/qa-final/internal/logger"
)

// Global config keys.
const (
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, wire)
	stop()

	if err != nil {
		// Discrepancies are already on stdout and in the log.
		if !errors.Is(err, cli.ErrDiscrepancies) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// wire builds the production services: TOML profiles, live relational
// and index sources, and the SQLite run history.
func wire(opts cli.Options) (*cli.Services, error) {
	cfg, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	format := opts.LogFormat
	if f := cfg.GetString(keyLogFormat); f != "" && format == logger.FormatConsole {
		format = f
	}
	log, err := logger.New(logger.Options{
		Level:   cfg.GetString(keyLogLevel),
		Format:  format,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}

	return &cli.Services{
		Check:   services.NewCheckService(sources.NewFactory(nil), log),
		Profile: services.NewProfileService(cfg),
		History: services.NewHistoryService(store.RunStore()),
		Log:     log,
		Close: func() error {
			_ = log.Sync()
			return store.Close()
		},
	}, nil
}
