// Package cli provides the qafinal command line interface.
//
// Each check is its own command (counts, columns, documents, lifecycle)
// and run executes all four in order. Checks report through the logger
// on stderr; stdout carries the run summary or, with --json, the reports.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/ports/driving"
)

// version is set at build time via -ldflags.
var version = "dev"

// ErrDiscrepancies is returned when a run found discrepancies and
// --no-fail was not given.
var ErrDiscrepancies = errors.New("discrepancies found")

// Global flags.
var (
	configDir string
	verbose   bool
	logFormat string
)

// Services used by commands. Set by the wiring function or by tests.
var (
	checkService   driving.CheckService
	profileService driving.ProfileService
	historyService driving.HistoryService
	reportLog      *zap.Logger
)

// Options carries the global flag values to the wiring function.
type Options struct {
	ConfigDir string
	Verbose   bool
	LogFormat string
	LogOutput io.Writer
}

// Services is the set of collaborators built by a WireFunc.
type Services struct {
	Check   driving.CheckService
	Profile driving.ProfileService
	History driving.HistoryService
	Log     *zap.Logger

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// WireFunc builds the services from the parsed global flags.
type WireFunc func(Options) (*Services, error)

var (
	wire          WireFunc
	closeServices func() error
)

// standaloneAnnotation marks commands that run without services.
const standaloneAnnotation = "standalone"

var rootCmd = &cobra.Command{
	Use:   "qafinal",
	Short: "Reconcile relational records with the search index",
	Long: `qafinal checks that the search index faithfully reflects the relational
system of record for each document type.

It compares record counts, column sets and individual documents between
the two stores, and validates lifecycle state and release dates in the
index. Profiles in ~/.qafinal/config.toml describe each document type.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: ensureServices,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.qafinal)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&logFormat, "log-format", "console", "log format: console or json")
}

// Execute runs the root command. wire is called once, before the first
// command that needs services.
func Execute(ctx context.Context, w WireFunc) error {
	wire = w
	defer func() {
		if closeServices != nil {
			_ = closeServices()
			closeServices = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func ensureServices(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[standaloneAnnotation]; ok {
		return nil
	}
	if checkService != nil || profileService != nil || wire == nil {
		return nil
	}

	svc, err := wire(Options{
		ConfigDir: configDir,
		Verbose:   verbose,
		LogFormat: logFormat,
		LogOutput: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	checkService = svc.Check
	profileService = svc.Profile
	historyService = svc.History
	reportLog = svc.Log
	closeServices = svc.Close
	return nil
}

// logger returns the reporting logger, never nil.
func logger() *zap.Logger {
	if reportLog == nil {
		return zap.NewNop()
	}
	return reportLog
}
