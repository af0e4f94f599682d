// Package compare produces line-level differences between two artifact
// versions, typically the previously deployed file and a fresh generation.
package compare

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rios0rios0/jobforge/domain"
)

// Files compares two files on disk line by line.
func Files(oldPath, newPath string) (*domain.CompareResult, error) {
	oldContent, err := os.ReadFile(oldPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", oldPath, err)
	}
	newContent, err := os.ReadFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", newPath, err)
	}
	return Content(string(oldContent), string(newContent)), nil
}

// Content compares two texts line by line.
func Content(oldText, newText string) *domain.CompareResult {
	result := &domain.CompareResult{
		LinesOld: countLines(oldText),
		LinesNew: countLines(newText),
	}

	for _, diff := range lineDiffs(oldText, newText) {
		lines := strings.Count(diff.Text, "\n")
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			result.Insertions += lines
		case diffmatchpatch.DiffDelete:
			result.Deletions += lines
		case diffmatchpatch.DiffEqual:
		}
	}

	result.Identical = result.Insertions == 0 && result.Deletions == 0
	return result
}

// Report renders a plain-text diff with -/+ prefixes, suitable for logging
// or for writing next to the generated artifact.
func Report(oldText, newText string) string {
	var report strings.Builder
	for _, diff := range lineDiffs(oldText, newText) {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
		}
		for _, line := range splitKeptLines(diff.Text) {
			report.WriteString(prefix)
			report.WriteString(line)
			report.WriteString("\n")
		}
	}
	return report.String()
}

// lineDiffs runs diff-match-patch in line mode so whole lines are the unit
// of change, matching how the artifacts are reviewed.
func lineDiffs(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lineIndex := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	return dmp.DiffCharsToLines(diffs, lineIndex)
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + boolToInt(!strings.HasSuffix(text, "\n"))
}

func splitKeptLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
