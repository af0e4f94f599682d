// Package output places generated artifacts on disk. The destination root is
// the directory containing the running executable, not the process working
// directory, so generated files land beside a distributed binary. The root
// resolver is injected so tests can redirect output to a temporary directory.
package output

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobforge/domain"
)

const (
	outputFileMode = 0o644
	outputDirMode  = 0o755
	backupStampFmt = "20060102_150405"
)

// RootResolver returns the absolute directory artifacts are written under.
type RootResolver func() (string, error)

// ExecutableDir is the default root resolver: the directory of the running
// binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate own executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// Writer implements domain.OutputWriter.
type Writer struct {
	resolveRoot RootResolver
	keepBackups bool
	backupDir   string // relative to the output root
}

// Options configures a Writer.
type Options struct {
	// Root overrides the default executable-directory resolver.
	Root RootResolver
	// KeepBackups saves a timestamped copy of any file about to be
	// overwritten, under BackupDir.
	KeepBackups bool
	BackupDir   string
}

// New creates a writer. A nil Root falls back to ExecutableDir, and an empty
// BackupDir falls back to "backups".
func New(opts Options) *Writer {
	resolver := opts.Root
	if resolver == nil {
		resolver = ExecutableDir
	}
	backupDir := opts.BackupDir
	if backupDir == "" {
		backupDir = "backups"
	}
	return &Writer{
		resolveRoot: resolver,
		keepBackups: opts.KeepBackups,
		backupDir:   backupDir,
	}
}

var _ domain.OutputWriter = (*Writer)(nil)

// Write places one artifact under the output root, overwriting any previous
// version unconditionally. Intermediate directories are created as needed.
func (it *Writer) Write(artifact *domain.GeneratedArtifact) (*domain.WriteResult, error) {
	root, err := it.resolveRoot()
	if err != nil {
		return nil, &domain.WriteError{Path: artifact.DestinationPath, Err: err}
	}

	target := filepath.Join(root, filepath.FromSlash(artifact.DestinationPath))

	overwrote := false
	backupPath := ""
	if _, statErr := os.Stat(target); statErr == nil {
		overwrote = true
		if it.keepBackups {
			backupPath, err = it.backup(root, target)
			if err != nil {
				return nil, &domain.WriteError{Path: target, Err: err}
			}
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(target), outputDirMode); mkdirErr != nil {
		return nil, &domain.WriteError{Path: target, Err: mkdirErr}
	}

	if writeErr := os.WriteFile(target, artifact.Content, outputFileMode); writeErr != nil {
		return nil, &domain.WriteError{Path: target, Err: writeErr}
	}

	sum := sha256.Sum256(artifact.Content)
	result := &domain.WriteResult{
		Path:       target,
		BytesCount: len(artifact.Content),
		Checksum:   hex.EncodeToString(sum[:]),
		BackupPath: backupPath,
		Overwrote:  overwrote,
	}

	logger.Debugf("Wrote %s (%d bytes)", target, result.BytesCount)
	return result, nil
}

// backup copies the current version of target into the backup directory with
// a timestamp suffix before it gets overwritten.
func (it *Writer) backup(root, target string) (string, error) {
	content, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("cannot read previous version: %w", err)
	}

	dir := filepath.Join(root, it.backupDir)
	if mkdirErr := os.MkdirAll(dir, outputDirMode); mkdirErr != nil {
		return "", mkdirErr
	}

	stamp := time.Now().Format(backupStampFmt)
	backupPath := filepath.Join(dir, fmt.Sprintf("%s.%s.bak", filepath.Base(target), stamp))
	if writeErr := os.WriteFile(backupPath, content, outputFileMode); writeErr != nil {
		return "", writeErr
	}

	logger.Debugf("Backed up previous %s to %s", filepath.Base(target), backupPath)
	return backupPath, nil
}
