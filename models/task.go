package models

import "encoding/json"

// DefaultTitle is assigned to persisted records that carry neither a
// "title" nor a legacy "name" field.
const DefaultTitle = "Untitled Task"

// Task represents a single to-do item.
type Task struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Done  bool   `json:"done"`
}

// TaskList is the full ordered list of tasks and the unit of persistence.
// Order is insertion order, which is also display order and the index used
// for toggle/delete addressing. Indices shift down on delete, so callers
// must re-fetch the list after every mutation before issuing another
// index-based operation.
type TaskList []Task

// taskRecord mirrors the raw persisted shape, including the legacy "name"
// field written by early versions of the app.
type taskRecord struct {
	Title *string         `json:"title"`
	Name  *string         `json:"name"`
	Done  json.RawMessage `json:"done"`
}

// UnmarshalJSON normalizes a record to the canonical schema on read:
// "name" is accepted as an alias for "title", a record with neither gets
// DefaultTitle, and a missing or non-boolean "done" is coerced to false.
// Normalization is idempotent; re-reading canonical output is a no-op.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	switch {
	case rec.Title != nil:
		t.Title = *rec.Title
	case rec.Name != nil:
		t.Title = *rec.Name
	default:
		t.Title = DefaultTitle
	}

	t.Done = false
	if len(rec.Done) > 0 {
		var done bool
		if err := json.Unmarshal(rec.Done, &done); err == nil {
			t.Done = done
		}
	}
	return nil
}

// NewTask creates a task in its initial (not done) state.
func NewTask(title string) Task {
	return Task{Title: title}
}
