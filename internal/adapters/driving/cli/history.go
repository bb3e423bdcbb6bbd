package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyProfile string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long:  `List recorded runs, newest first. Use "history show <run-id>" for the full report.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a recorded report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	historyCmd.Flags().StringVarP(&historyProfile, "profile", "p", "", "only list runs of this profile")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	runs, err := historyService.Recent(cmd.Context(), historyProfile, historyLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		result := statusPass
		if r.Failed() {
			result = statusFail
		}
		fmt.Fprintf(w, "%s  %s  %-12s %-4s %d discrepancies, %d failed checks\n",
			r.RunID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Profile,
			result,
			r.Discrepancies,
			r.FailedChecks,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	report, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
