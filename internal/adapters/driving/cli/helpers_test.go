package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/adapters/driven/storage/memory"
	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/services"
)

const (
	testParentQuery = "SELECT * FROM items"
	testChildQuery  = "SELECT * FROM attachments"
)

// testEnv holds the memory-backed collaborators behind the CLI services.
type testEnv struct {
	rel    *memory.RelationalSource
	idx    *memory.IndexSource
	config *memory.ConfigStore
	runs   *memory.RunStore
}

// profileConfig returns the flattened config of a valid profile.
func profileConfig(name string) map[string]any {
	prefix := "profiles." + name + "."
	return map[string]any{
		prefix + "relational.dsn": "oracle://qa:secret@db:1521/ORCL",
		prefix + "index.url":      "http://solr:8983/solr/" + name,
		prefix + "queries.parent": testParentQuery,
		prefix + "queries.child":  testChildQuery,
	}
}

// setupTestServices installs memory-backed services for the given
// config and resets command state when the test ends.
func setupTestServices(t *testing.T, config map[string]any) *testEnv {
	t.Helper()

	rel := memory.NewRelationalSource()
	rel.SetResult(testParentQuery, []domain.Row{{
		"ITEM_NUMBER":  "X1",
		"DESCRIPTION":  "Doc",
		"LIFECYCLE":    "Production",
		"RELEASE_DATE": "2023-01-02",
	}})
	rel.SetResult(testChildQuery, []domain.Row{{
		"ITEM_NUMBER":  "X1",
		"FILENAME":     "b.pdf",
		"IFS_FILEPATH": "a/b.pdf",
		"REV_NUMBER":   1,
	}})

	idx := memory.NewIndexSource(
		[]domain.IndexDocument{{
			"item_number":  []any{"t X1"},
			"description":  []any{"t Doc"},
			"lifecycle":    []any{"t Production"},
			"release_date": []any{"t 2023-01-02"},
			"filename":     []any{"t b.pdf"},
			"ifs_filepath": []any{"t a/b.pdf"},
			"rev_number":   []any{"t 1"},
		}},
		[]domain.SchemaField{
			{Name: "item_number"}, {Name: "description"}, {Name: "lifecycle"},
			{Name: "release_date"}, {Name: "filename"}, {Name: "ifs_filepath"},
			{Name: "rev_number"}, {Name: "_version_"}, {Name: "id"},
		},
	)

	env := &testEnv{
		rel:    rel,
		idx:    idx,
		config: memory.NewConfigStoreFrom(config),
		runs:   memory.NewRunStore(),
	}

	checkService = services.NewCheckService(memory.NewSourceFactory(rel, idx), zap.NewNop())
	profileService = services.NewProfileService(env.config)
	historyService = services.NewHistoryService(env.runs)
	reportLog = zap.NewNop()

	t.Cleanup(func() {
		checkService = nil
		profileService = nil
		historyService = nil
		reportLog = nil
		profileNames = nil
		allProfiles = false
		checkJSON = false
		noFail = false
		profilesJSON = false
		historyLimit = 20
		historyProfile = ""
	})
	return env
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func mergeConfig(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func requireReport(t *testing.T, env *testEnv) *domain.RunReport {
	t.Helper()
	runs, err := env.runs.List(t.Context(), "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	report, err := env.runs.Get(t.Context(), runs[0].RunID)
	require.NoError(t, err)
	return report
}
