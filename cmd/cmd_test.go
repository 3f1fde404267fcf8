package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/dataset/datasettest"
)

// env points the CLI at a fresh data file and database.
type env struct {
	data string
	db   string
}

func newEnv(t *testing.T, rows int) env {
	t.Helper()
	for _, name := range []string{
		"DROPWATCH_CONFIG", "DROPWATCH_DATA", "DROPWATCH_DB", "DROPWATCH_CACHE",
		"DROPWATCH_REDIS_ADDR", "DROPWATCH_SEED", "DROPWATCH_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(data, []byte(csvFor(datasettest.Records(rows, 1))), 0o644))
	return env{data: data, db: filepath.Join(dir, "dropwatch.db")}
}

func csvFor(records []dataset.StudentRecord) string {
	var b strings.Builder
	b.WriteString(strings.Join(dataset.RequiredColumns, ";") + "\n")
	flag := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	for _, r := range records {
		fmt.Fprintf(&b, "%d;%.0f;%.1f;%d;%.2f;%d;%s\n", r.Course, r.Age, r.AdmissionGrade,
			flag(r.ScholarshipHolder), r.FirstSemesterGrade, flag(r.TuitionUpToDate), r.Outcome)
	}
	return b.String()
}

// resetFlags restores every flag to its default, since the command tree
// is package state shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--data", e.data, "--db", e.db, "--cache", "sqlite"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStats(t *testing.T) {
	e := newEnv(t, 30)
	out, err := e.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Students:    30")
	assert.Contains(t, out, "Dropouts:    10 (33.33%)")
	assert.Contains(t, out, "Informatics Engineering")
	assert.Contains(t, out, "Correlation with Target")
}

func TestStats_MissingDataFile(t *testing.T) {
	e := newEnv(t, 30)
	e.data = filepath.Join(t.TempDir(), "missing.csv")
	_, err := e.run(t, "stats")
	var loadErr *dataset.DataLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestTrain_SecondRunHitsCache(t *testing.T) {
	e := newEnv(t, 60)
	out, err := e.run(t, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:       trained")
	assert.Contains(t, out, "Cache:       sqlite")

	out, err = e.run(t, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded from cache")
	assert.Contains(t, out, "1 hit")

	out, err = e.run(t, "train", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:       trained")
}

func TestPredict_RecordsAssessment(t *testing.T) {
	e := newEnv(t, 60)
	out, err := e.run(t, "predict", "--age", "30", "--admission-grade", "105",
		"--first-sem-grade", "6", "--tuition-paid=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Probability:")
	assert.Contains(t, out, "Recommended programmes:")
	assert.Contains(t, out, "1. Financial Aid Program")
	assert.Contains(t, out, "Assessment recorded.")

	out, err = e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, "Financial Aid Program")
}

func TestPredict_NoRecord(t *testing.T) {
	e := newEnv(t, 60)
	_, err := e.run(t, "predict", "--record=false")
	require.NoError(t, err)

	out, err := e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No assessments recorded.")
}

func TestRecommend(t *testing.T) {
	e := newEnv(t, 60)
	out, err := e.run(t, "recommend", "--risk", "high", "--course", "nursing", "--sample", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Filter:   High Risk, Nursing (9500)")
	assert.Contains(t, out, "Matching:")
	assert.Contains(t, out, "2. row")
	assert.NotContains(t, out, "3. row")
	assert.Contains(t, out, "Conclusions")
}

func TestRecommend_InvalidFlags(t *testing.T) {
	e := newEnv(t, 30)
	_, err := e.run(t, "recommend", "--risk", "severe")
	assert.Error(t, err)

	_, err = e.run(t, "recommend", "--course", "astronomy")
	assert.ErrorContains(t, err, "no course matches")
}

func TestReset(t *testing.T) {
	e := newEnv(t, 60)
	_, err := e.run(t, "predict")
	require.NoError(t, err)

	out, err := e.run(t, "reset", "--cache-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared sqlite model cache.")

	out, err = e.run(t, "history")
	require.NoError(t, err)
	assert.NotContains(t, out, "No assessments recorded.")

	out, err = e.run(t, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:       trained", "cache was cleared")

	_, err = e.run(t, "reset")
	require.NoError(t, err)
	out, err = e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No assessments recorded.")
}

func TestLLMList_Empty(t *testing.T) {
	e := newEnv(t, 30)
	out, err := e.run(t, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")
}

func TestVersion(t *testing.T) {
	e := newEnv(t, 30)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dropwatch (devel)\n", out)
}

func TestUnknownCacheBackend(t *testing.T) {
	e := newEnv(t, 30)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--data", e.data, "--db", e.db, "--cache", "disk", "train"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "unknown cache backend")
}

func TestRuntimeClose_ReportsEveryFailure(t *testing.T) {
	var order []string
	closer := func(name string, err error) func() error {
		return func() error {
			order = append(order, name)
			return err
		}
	}
	errStore, errCache := errors.New("store busy"), errors.New("redis gone")
	rt := &runtime{closers: []func() error{closer("store", errStore), closer("cache", errCache)}}

	err := rt.Close()
	assert.ErrorIs(t, err, errStore)
	assert.ErrorIs(t, err, errCache)
	assert.Equal(t, []string{"cache", "store"}, order)

	cmdErr := errors.New("command failed")
	joined := cmdErr
	closeRuntime(rt, &joined)
	assert.ErrorIs(t, joined, cmdErr)
	assert.ErrorIs(t, joined, errStore)

	var clean error
	closeRuntime(&runtime{closers: []func() error{closer("store", nil)}}, &clean)
	assert.NoError(t, clean)
}
