package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// Check command flags.
var (
	profileNames []string
	allProfiles  bool
	checkJSON    bool
	noFail       bool
)

var countsCmd = newCheckCmd("counts", "Compare record counts",
	`Compare the number of composite relational documents (parents joined with
their children) with the number of documents in the index.`,
	domain.CheckCounts)

var columnsCmd = newCheckCmd("columns", "Compare column sets",
	`Compare the field names of the composite relational documents with the
fields declared in the index schema, minus the ignored index fields.`,
	domain.CheckColumns)

var documentsCmd = newCheckCmd("documents", "Compare documents field by field",
	`Pair documents by item number and file path, report documents present in
only one store and compare the configured fields of every matched pair.`,
	domain.CheckDocuments)

var lifecycleCmd = newCheckCmd("lifecycle", "Validate lifecycle state and release dates",
	`Flag index documents whose lifecycle is not the expected status or whose
release date is not a valid YYYY-MM-DD date between 1900 and 2100.`,
	domain.CheckLifecycle)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every check",
	Long: `Run counts, columns, documents and lifecycle in order for each selected
profile. A failing check is recorded and the run continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runChecks(cmd, domain.AllChecks)
	},
}

func newCheckCmd(use, short, long string, check domain.CheckKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, []domain.CheckKind{check})
		},
	}
}

func init() {
	for _, cmd := range []*cobra.Command{countsCmd, columnsCmd, documentsCmd, lifecycleCmd, runCmd} {
		cmd.Flags().StringSliceVarP(&profileNames, "profile", "p", nil, "profile(s) to check")
		cmd.Flags().BoolVar(&allProfiles, "all", false, "check every configured profile")
		cmd.Flags().BoolVar(&checkJSON, "json", false, "output reports as JSON")
		cmd.Flags().BoolVar(&noFail, "no-fail", false, "exit zero even when discrepancies are found")
		rootCmd.AddCommand(cmd)
	}
}

func runChecks(cmd *cobra.Command, checks []domain.CheckKind) error {
	if checkService == nil || profileService == nil {
		return errors.New("check service not configured")
	}

	profiles, err := selectedProfiles()
	if err != nil {
		return err
	}

	reports := make([]*domain.RunReport, 0, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return err
		}
		report, err := checkService.Run(cmd.Context(), p, checks)
		if err != nil {
			return fmt.Errorf("run %s: %w", p.Name, err)
		}
		recordRun(cmd, report)
		reports = append(reports, report)
	}

	if checkJSON {
		if err := outputReportsJSON(cmd, reports); err != nil {
			return err
		}
	} else {
		renderSummary(cmd.OutOrStdout(), reports)
	}

	if noFail {
		return nil
	}
	for _, r := range reports {
		if r.Failed() {
			return ErrDiscrepancies
		}
	}
	return nil
}

// selectedProfiles resolves --profile and --all. With neither flag a
// single configured profile is used implicitly.
func selectedProfiles() ([]domain.Profile, error) {
	names := profileNames
	configured := profileService.List()

	switch {
	case allProfiles:
		names = configured
	case len(names) == 0 && len(configured) == 1:
		names = configured
	case len(names) == 0:
		if len(configured) == 0 {
			return nil, errors.New("no profiles configured")
		}
		return nil, fmt.Errorf("no profile selected; use --profile or --all (configured: %s)",
			strings.Join(configured, ", "))
	}

	profiles := make([]domain.Profile, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		p, err := profileService.Get(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func recordRun(cmd *cobra.Command, report *domain.RunReport) {
	if historyService == nil {
		return
	}
	if err := historyService.Record(cmd.Context(), report); err != nil {
		logger().Warn("Failed to record run history", zap.String("run_id", report.RunID), zap.Error(err))
	}
}

func outputReportsJSON(cmd *cobra.Command, reports []*domain.RunReport) error {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reports: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
