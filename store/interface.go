package store

import "github.com/josephgoksu/taskbuddy/models"

// TaskStore defines the interface for task persistence.
// The collection is read in full at the start of every operation and
// written back in full at the end; there is no in-memory cache across
// calls.
type TaskStore interface {
	// Initialize configures the store with necessary parameters, such as
	// the data file path and the backup directory.
	// It should be called before any other store operations.
	Initialize(config map[string]string) error

	// Load reads the full task collection from the data file.
	// A missing file yields an empty collection, not an error. A corrupted
	// file triggers backup recovery; if that also fails, an empty
	// collection is returned and a warning is logged.
	Load() (models.TaskList, error)

	// Save writes the full task collection to the data file, snapshotting
	// the previous contents to the backup directory first. A write failure
	// is returned to the caller; the pre-write backup remains available as
	// a recovery point.
	Save(list models.TaskList) error

	// Path returns the location of the data file.
	Path() string

	// Close releases any resources held by the store, such as file locks.
	// It should be called when the store is no longer needed.
	Close() error
}
