package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobforge/domain"
	"github.com/rios0rios0/jobforge/infrastructure/history"
)

func entry(job, operation string) domain.HistoryEntry {
	return domain.HistoryEntry{
		Timestamp: "2024-01-01T12:00:00Z",
		User:      "fixture",
		Operation: operation,
		Job:       job,
		Template:  "batch-job",
		Path:      "job/" + job,
		Result:    "success",
	}
}

func TestJournal_Append(t *testing.T) {
	t.Parallel()

	t.Run("should create the journal file on first append", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		journal := history.New(dir)

		// when
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))

		// then
		entries, err := journal.Recent(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "jfm1aa10.bat", entries[0].Job)
		assert.FileExists(t, filepath.Join(dir, "history.json"))
	})

	t.Run("should append without dropping previous entries", func(t *testing.T) {
		t.Parallel()

		// given
		journal := history.New(t.TempDir())
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))

		// when
		journal.Append(entry("fm_kpi.cmd", "generate-manual"))

		// then
		entries, err := journal.Recent(0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "jfm1aa10.bat", entries[0].Job)
		assert.Equal(t, "fm_kpi.cmd", entries[1].Job)
	})

	t.Run("should fill in timestamp and user when absent", func(t *testing.T) {
		t.Parallel()

		// given
		journal := history.New(t.TempDir())

		// when
		journal.Append(domain.HistoryEntry{Operation: "generate-auto", Job: "jfm1aa10.bat"})

		// then
		entries, err := journal.Recent(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.NotEmpty(t, entries[0].Timestamp)
		assert.NotEmpty(t, entries[0].User)
	})

	t.Run("should restart the journal when the file is corrupt", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0o644))
		journal := history.New(dir)

		// when: append must not fail a generation run
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))

		// then
		entries, err := journal.Recent(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})
}

func TestJournal_Recent(t *testing.T) {
	t.Parallel()

	t.Run("should return the last n entries, newest last", func(t *testing.T) {
		t.Parallel()

		// given
		journal := history.New(t.TempDir())
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))
		journal.Append(entry("jfm1aa20.bat", "generate-auto"))
		journal.Append(entry("fm_kpi.cmd", "generate-manual"))

		// when
		entries, err := journal.Recent(2)

		// then
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "jfm1aa20.bat", entries[0].Job)
		assert.Equal(t, "fm_kpi.cmd", entries[1].Job)
	})

	t.Run("should return nothing for an empty journal", func(t *testing.T) {
		t.Parallel()

		// when
		entries, err := history.New(t.TempDir()).Recent(10)

		// then
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestJournal_Search(t *testing.T) {
	t.Parallel()

	t.Run("should match any field case-insensitively", func(t *testing.T) {
		t.Parallel()

		// given
		journal := history.New(t.TempDir())
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))
		journal.Append(entry("fm_kpi.cmd", "generate-manual"))

		// when
		matches, err := journal.Search("KPI")

		// then
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "fm_kpi.cmd", matches[0].Job)
	})

	t.Run("should return nothing when no entry matches", func(t *testing.T) {
		t.Parallel()

		// given
		journal := history.New(t.TempDir())
		journal.Append(entry("jfm1aa10.bat", "generate-auto"))

		// when
		matches, err := journal.Search("purge")

		// then
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
