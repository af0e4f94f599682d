// Package history keeps an append-only JSON journal of generation runs,
// stored beside the generated artifacts so the journal travels with the
// output of a distributed binary.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobforge/domain"
)

const (
	fileName     = "history.json"
	fileMode     = 0o644
	timestampFmt = time.RFC3339
)

// Journal records generation operations in a JSON file under its directory.
type Journal struct {
	dir string
}

// New creates a journal rooted at the given directory.
func New(dir string) *Journal {
	return &Journal{dir: dir}
}

// Append records one operation. Journal failures are logged, not fatal:
// losing a history line must never fail a generation run.
func (it *Journal) Append(entry domain.HistoryEntry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(timestampFmt)
	}
	if entry.User == "" {
		entry.User = currentUser()
	}

	entries, err := it.load()
	if err != nil {
		logger.Warnf("History journal unreadable, starting a new one: %v", err)
		entries = nil
	}
	entries = append(entries, entry)

	if saveErr := it.save(entries); saveErr != nil {
		logger.Warnf("Failed to save history journal: %v", saveErr)
	}
}

// Recent returns the last n entries, newest last.
func (it *Journal) Recent(n int) ([]domain.HistoryEntry, error) {
	entries, err := it.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Search returns entries whose fields contain the term, case-insensitively.
func (it *Journal) Search(term string) ([]domain.HistoryEntry, error) {
	entries, err := it.load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	var matches []domain.HistoryEntry
	for _, entry := range entries {
		haystack := strings.ToLower(strings.Join([]string{
			entry.Timestamp, entry.User, entry.Operation,
			entry.Job, entry.Template, entry.Path, entry.Result,
		}, "\n"))
		if strings.Contains(haystack, needle) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

func (it *Journal) path() string {
	return filepath.Join(it.dir, fileName)
}

func (it *Journal) load() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(it.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []domain.HistoryEntry
	if unmarshalErr := json.Unmarshal(data, &entries); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse history: %w", unmarshalErr)
	}
	return entries, nil
}

func (it *Journal) save(entries []domain.HistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if mkdirErr := os.MkdirAll(it.dir, 0o755); mkdirErr != nil {
		return mkdirErr
	}
	return os.WriteFile(it.path(), data, fileMode)
}

func currentUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return "unknown"
}
