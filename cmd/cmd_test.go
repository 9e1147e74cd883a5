package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/insight"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

// isolate points config discovery at empty directories and clears the
// vendor key variables.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"MEMOFLOW_GEMINI_API_KEY", "MEMOFLOW_OPENAI_API_KEY", "MEMOFLOW_ANTHROPIC_API_KEY", "MEMOFLOW_OPENROUTER_API_KEY",
		"MEMOFLOW_LLM_PROVIDER", "MEMOFLOW_DB",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
	return filepath.Join(t.TempDir(), "memoflow.db")
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "memoflow (devel)")
}

func TestDashboard(t *testing.T) {
	db := isolate(t)
	out, err := run(t, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Junior High 1600")
	assert.Contains(t, out, "Senior High Phrases")
	assert.Contains(t, out, "All courses")
}

func TestImportAndClearCustom(t *testing.T) {
	db := isolate(t)
	csv := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(csv, []byte("id,en,zh\nx1,zeal,热情\nx2,,空\nj1,apple,苹果\n"), 0o644))

	out, err := run(t, "--db", db, "import", "junior_1600", csv)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 new word(s)")
	assert.Contains(t, out, "row 3: missing en")

	out, err = run(t, "--db", db, "import", "junior_1600", csv)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 new word(s)")

	_, err = run(t, "--db", db, "clear-custom")
	assert.ErrorContains(t, err, "--yes")

	out, err = run(t, "--db", db, "clear-custom", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 imported word(s)")

	_, err = run(t, "--db", db, "import", "nope", csv)
	assert.ErrorIs(t, err, vocab.ErrUnknownCourse)
}

func TestResetAndStats(t *testing.T) {
	db := isolate(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, st.ProgressRepo().SaveProgress(context.Background(), spacedrep.ProgressMap{
		"j1": {WordID: "j1", Stage: 2, NextReview: past, LastReviewed: past},
		"j2": {WordID: "j2", Stage: 7, NextReview: time.Now().Add(time.Hour), LastReviewed: past},
	}))
	require.NoError(t, st.Close())

	out, err := run(t, "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1 word(s) due")
	assert.Contains(t, out, "Most overdue: apple (1h)")

	_, err = run(t, "--db", db, "reset")
	assert.ErrorContains(t, err, "--yes")

	out, err = run(t, "--db", db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared progress for 2 word(s)")
}

func TestHistoryAndLLMEmpty(t *testing.T) {
	db := isolate(t)

	out, err := run(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet.")

	out, err = run(t, "--db", db, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = run(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = run(t, "--db", db, "llm", "view", "abc")
	assert.ErrorContains(t, err, "invalid sequence")
}

func TestInsightWithoutProvider(t *testing.T) {
	db := isolate(t)
	out, err := run(t, "--db", db, "insight", "junior_1600", "j1")
	require.NoError(t, err)
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, insight.NoticeNotConfigured)

	_, err = run(t, "--db", db, "insight", "junior_1600", "missing")
	assert.ErrorIs(t, err, vocab.ErrWordNotFound)
}

func TestPracticeRejectsUnknownCourse(t *testing.T) {
	db := isolate(t)
	_, err := run(t, "--db", db, "learn", "nope")
	assert.ErrorIs(t, err, vocab.ErrUnknownCourse)
}
