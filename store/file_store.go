package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/josephgoksu/taskbuddy/models"
)

const (
	defaultDataFile  = "tasks.json"
	dataFileKey      = "dataFile"
	backupDirKey     = "backupDir"
	defaultBackupDir = "backups"
)

// FileTaskStore implements the TaskStore interface over a single JSON file.
// The file holds a pretty-printed array of task records; non-ASCII
// characters are written unescaped. Every Load re-reads the file from disk
// and every Save rewrites it in full, snapshotting the previous contents
// through a BackupManager first.
type FileTaskStore struct {
	filePath string
	backups  *BackupManager
	flk      *flock.Flock
	logger   *slog.Logger
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{logger: slog.Default()}
}

// SetLogger replaces the logger used for recovery warnings.
func (s *FileTaskStore) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Initialize configures the FileTaskStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'tasks.json' in the current working directory,
// and an optional 'backupDir' key naming the snapshot directory, defaulting
// to a 'backups' directory next to the data file. It establishes a file
// lock on the data file path.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	backupDir := config[backupDirKey]
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(s.filePath), defaultBackupDir)
	}
	s.backups = NewBackupManager(afero.NewOsFs(), backupDir, s.logger)

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	return nil
}

// Backups exposes the backup manager, for callers that need to trigger a
// manual restore.
func (s *FileTaskStore) Backups() *BackupManager {
	return s.backups
}

// Path returns the location of the data file.
func (s *FileTaskStore) Path() string {
	return s.filePath
}

// Load reads the task collection from the data file.
func (s *FileTaskStore) Load() (models.TaskList, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock %s for load: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.loadLocked()
}

// Save snapshots the current data file and overwrites it with the given
// collection.
func (s *FileTaskStore) Save(list models.TaskList) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock %s for save: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.saveLocked(list)
}

// loadLocked assumes the file lock is held.
func (s *FileTaskStore) loadLocked() (models.TaskList, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.TaskList{}, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	list, err := decodeTasks(data)
	if err == nil {
		return list, nil
	}

	// Corrupted store. Recovery is best-effort: apply the most recent
	// backup, or fall back to an empty collection. Neither case is a hard
	// failure for the caller.
	s.logger.Warn("task file is corrupted, attempting backup recovery", "path", s.filePath, "error", err)

	restored, restoreErr := s.backups.RestoreLatest(s.filePath)
	if restoreErr != nil {
		s.logger.Warn("backup recovery failed, starting with an empty task list", "path", s.filePath, "error", restoreErr)
		return models.TaskList{}, nil
	}
	if !restored {
		s.logger.Warn("no backup available, starting with an empty task list", "path", s.filePath)
		return models.TaskList{}, nil
	}

	data, err = os.ReadFile(s.filePath)
	if err != nil {
		s.logger.Warn("could not re-read restored task file", "path", s.filePath, "error", err)
		return models.TaskList{}, nil
	}
	list, err = decodeTasks(data)
	if err != nil {
		s.logger.Warn("restored backup is also corrupted, starting with an empty task list", "path", s.filePath, "error", err)
		return models.TaskList{}, nil
	}
	return list, nil
}

// saveLocked assumes the file lock is held.
func (s *FileTaskStore) saveLocked(list models.TaskList) error {
	if _, err := s.backups.Backup(s.filePath); err != nil {
		// Backup is best-effort and never blocks the primary write.
		s.logger.Warn("pre-save backup failed", "path", s.filePath, "error", err)
	}

	if list == nil {
		list = models.TaskList{}
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	if err := os.WriteFile(s.filePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", s.filePath, err)
	}
	return nil
}

// decodeTasks parses the persisted JSON array, treating a blank file as an
// empty collection.
func decodeTasks(data []byte) (models.TaskList, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return models.TaskList{}, nil
	}
	var list models.TaskList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Close releases the file lock associated with the store.
// flock.Unlock() is idempotent and can be called even if the lock is not
// held by this process.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
