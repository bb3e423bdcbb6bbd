package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nvdpcode/qa-final/internal/adapters/driven/storage/memory"
	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/services"
)

func TestCheckCommands_Registered(t *testing.T) {
	for _, name := range []string{"counts", "columns", "documents", "lifecycle", "run"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.NotNil(t, cmd.Flags().Lookup("profile"), name)
		assert.NotNil(t, cmd.Flags().Lookup("all"), name)
		assert.NotNil(t, cmd.Flags().Lookup("json"), name)
		assert.NotNil(t, cmd.Flags().Lookup("no-fail"), name)
	}
}

func TestRunCmd_AllChecksPass(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))

	out, err := execute(t, "run")

	require.NoError(t, err)
	assert.Contains(t, out, "MEMO (memo)")
	assert.Contains(t, out, "counts")
	assert.Contains(t, out, "relational 1, index 1")
	assert.Contains(t, out, "lifecycle")
	assert.Contains(t, out, "0 of 1 documents")
	assert.Contains(t, out, "Result: PASS")
	assert.NotContains(t, out, "FAIL")

	report := requireReport(t, env)
	assert.Equal(t, "memo", report.Profile)
	assert.NotNil(t, report.Counts)
	assert.NotNil(t, report.Lifecycle)
}

func TestCountsCmd_RunsOnlyCounts(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))

	out, err := execute(t, "counts", "--profile", "memo")

	require.NoError(t, err)
	assert.Contains(t, out, "counts")
	assert.NotContains(t, out, "lifecycle")

	report := requireReport(t, env)
	assert.NotNil(t, report.Counts)
	assert.Nil(t, report.Columns)
	assert.Nil(t, report.Documents)
	assert.Nil(t, report.Lifecycle)
}

func TestCountsCmd_MismatchFails(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))
	env.rel.SetResult(testChildQuery, []domain.Row{
		{"ITEM_NUMBER": "X1", "FILENAME": "b.pdf", "IFS_FILEPATH": "a/b.pdf", "REV_NUMBER": 1},
		{"ITEM_NUMBER": "X1", "FILENAME": "c.pdf", "IFS_FILEPATH": "a/c.pdf", "REV_NUMBER": 1},
	})

	out, err := execute(t, "counts")

	assert.ErrorIs(t, err, ErrDiscrepancies)
	assert.Contains(t, out, "relational 2, index 1")
	assert.Contains(t, out, "Result: FAIL (1 discrepancies)")
}

func TestCountsCmd_NoFail(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))
	env.rel.SetResult(testChildQuery, nil)

	out, err := execute(t, "counts", "--no-fail")

	require.NoError(t, err)
	assert.Contains(t, out, "Result: FAIL")
}

func TestLifecycleCmd_Violation(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))
	idx := memory.NewIndexSource([]domain.IndexDocument{{
		"item_number":  []any{"t X1"},
		"lifecycle":    []any{"t Draft"},
		"release_date": []any{"t 2023-01-02"},
	}}, nil)
	checkService = services.NewCheckService(memory.NewSourceFactory(env.rel, idx), zap.NewNop())

	out, err := execute(t, "lifecycle")

	assert.ErrorIs(t, err, ErrDiscrepancies)
	assert.Contains(t, out, "1 of 1 documents")
}

func TestColumnsCmd_JSON(t *testing.T) {
	setupTestServices(t, profileConfig("memo"))

	out, err := execute(t, "columns", "--json")

	require.NoError(t, err)
	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "memo", report.Profile)
	require.NotNil(t, report.Columns)
	assert.Nil(t, report.Columns.Mismatch)
	assert.Nil(t, report.Counts)
}

func TestRunCmd_CheckErrorIsReported(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))
	env.idx.SetSchemaError(errors.New("connection refused"))

	out, err := execute(t, "columns")

	assert.ErrorIs(t, err, ErrDiscrepancies)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Result: ERROR (1 failed checks, 0 discrepancies)")

	report := requireReport(t, env)
	assert.Contains(t, report.Errors, domain.CheckColumns)
}

func TestRunCmd_AllProfilesJSON(t *testing.T) {
	setupTestServices(t, mergeConfig(profileConfig("memo"), profileConfig("bv")))

	out, err := execute(t, "counts", "--all", "--json")

	require.NoError(t, err)
	var reports []domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "bv", reports[0].Profile)
	assert.Equal(t, "memo", reports[1].Profile)
}

func TestRunCmd_DuplicateProfileRunsOnce(t *testing.T) {
	env := setupTestServices(t, profileConfig("memo"))

	_, err := execute(t, "counts", "-p", "memo", "-p", "memo")

	require.NoError(t, err)
	requireReport(t, env)
}

func TestRunCmd_AmbiguousProfile(t *testing.T) {
	setupTestServices(t, mergeConfig(profileConfig("memo"), profileConfig("bv")))

	_, err := execute(t, "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bv, memo")
}

func TestRunCmd_NoProfiles(t *testing.T) {
	setupTestServices(t, map[string]any{})

	_, err := execute(t, "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profiles configured")
}

func TestRunCmd_UnknownProfile(t *testing.T) {
	setupTestServices(t, profileConfig("memo"))

	_, err := execute(t, "run", "--profile", "nope")

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRunCmd_InvalidProfile(t *testing.T) {
	setupTestServices(t, map[string]any{"profiles.memo.doctype": "MEMO"})

	_, err := execute(t, "run")

	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestRunCmd_NotConfigured(t *testing.T) {
	_, err := execute(t, "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRunCmd_WiresServices(t *testing.T) {
	var got Options
	wire = func(opts Options) (*Services, error) {
		got = opts
		return nil, errors.New("wiring failed")
	}
	t.Cleanup(func() {
		wire = nil
		verbose = false
	})

	_, err := execute(t, "run", "--verbose")

	require.EqualError(t, err, "wiring failed")
	assert.True(t, got.Verbose)
	assert.Equal(t, "console", got.LogFormat)
	assert.NotNil(t, got.LogOutput)
}
