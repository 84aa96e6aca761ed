package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	backupTimeLayout = "20060102_150405"
	backupSuffix     = ".backup"
)

// BackupManager keeps timestamped copies of the task file in a dedicated
// directory. Snapshots are created before every save and are never pruned.
// The timestamp layout sorts lexicographically, so the greatest filename is
// always the most recent backup.
//
// It operates on an afero.Fs so tests can run against an in-memory
// filesystem. Use afero.NewOsFs() for real filesystem operations.
type BackupManager struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewBackupManager creates a BackupManager that stores snapshots under dir.
func NewBackupManager(fsys afero.Fs, dir string, logger *slog.Logger) *BackupManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupManager{fs: fsys, dir: dir, logger: logger}
}

// Backup copies the file at path into the backup directory under a
// timestamped name and returns the snapshot path. It is a no-op returning
// an empty path when the source file does not exist yet.
func (m *BackupManager) Backup(path string) (string, error) {
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s for backup: %w", path, err)
	}

	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory %s: %w", m.dir, err)
	}

	name := fmt.Sprintf("%s.%s%s", filepath.Base(path), time.Now().Format(backupTimeLayout), backupSuffix)
	dest := filepath.Join(m.dir, name)
	if err := afero.WriteFile(m.fs, dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", dest, err)
	}

	return dest, nil
}

// RestoreLatest copies the most recent backup of the file at path over the
// target and reports whether a backup was applied. When no matching backup
// exists the target is left untouched and false is returned without error.
func (m *BackupManager) RestoreLatest(path string) (bool, error) {
	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("list backup directory %s: %w", m.dir, err)
	}

	prefix := filepath.Base(path) + "."
	var latest string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return false, nil
	}

	data, err := afero.ReadFile(m.fs, filepath.Join(m.dir, latest))
	if err != nil {
		return false, fmt.Errorf("read backup %s: %w", latest, err)
	}
	if err := afero.WriteFile(m.fs, path, data, 0o644); err != nil {
		return false, fmt.Errorf("restore backup %s to %s: %w", latest, path, err)
	}

	m.logger.Info("restored task file from backup", "path", path, "backup", latest)
	return true, nil
}
