package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var profilesJSON bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configured profiles",
	Long: `List the profiles configured under [profiles.<name>] with their document
type, relational driver, index URL and whether every required setting is
present.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

// profileView is the listing shape of a profile. Connection strings are
// never printed.
type profileView struct {
	Name     string `json:"name"`
	DocType  string `json:"doctype"`
	Driver   string `json:"driver"`
	IndexURL string `json:"index_url"`
	Valid    bool   `json:"valid"`
	Problem  string `json:"problem,omitempty"`
}

func init() {
	profilesCmd.Flags().BoolVar(&profilesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	views := make([]profileView, 0)
	for _, name := range profileService.List() {
		p, err := profileService.Get(name)
		if err != nil {
			return err
		}
		v := profileView{
			Name:     p.Name,
			DocType:  p.DocType,
			Driver:   p.RelationalDriver,
			IndexURL: p.IndexURL,
			Valid:    true,
		}
		if err := p.Validate(); err != nil {
			v.Valid = false
			v.Problem = err.Error()
		}
		views = append(views, v)
	}

	w := cmd.OutOrStdout()
	if profilesJSON {
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profiles: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(w, "No profiles configured.")
		return nil
	}
	for _, v := range views {
		status := "ok"
		if !v.Valid {
			status = v.Problem
		}
		fmt.Fprintf(w, "%-12s %-10s %-8s %s  [%s]\n", v.Name, v.DocType, v.Driver, v.IndexURL, status)
	}
	return nil
}
