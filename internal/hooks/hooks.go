package hooks

import (
	"fmt"
	"os"
	"time"

	"github.com/josephgoksu/taskbuddy/internal/metrics"
	"github.com/josephgoksu/taskbuddy/models"
	"github.com/josephgoksu/taskbuddy/store"
)

// ValidationHook cleans and validates the task ahead of persistence.
type ValidationHook struct {
	validator *models.Validator
}

// NewValidationHook wires a Validator into the before stage.
func NewValidationHook(v *models.Validator) *ValidationHook {
	return &ValidationHook{validator: v}
}

func (h *ValidationHook) Name() string { return "validation" }

func (h *ValidationHook) Before(ev *Event) error {
	switch ev.Op {
	case OpAdd:
		return h.validator.ValidateTask(&ev.Task)
	default:
		// Toggle and delete operate on records already normalized on load;
		// the done flag is guaranteed boolean at this point.
		return nil
	}
}

// OpLogHook appends one line per committed mutation to the operation log
// file, e.g.
//
//	[2025-01-02T15:04:05+01:00] TASK_TOGGLED: Buy milk - completed
type OpLogHook struct {
	path string
}

// NewOpLogHook creates an operation log appender writing to path.
func NewOpLogHook(path string) *OpLogHook {
	return &OpLogHook{path: path}
}

func (h *OpLogHook) Name() string { return "oplog" }

func (h *OpLogHook) After(ev Event) error {
	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format(time.RFC3339), opLabels[ev.Op], ev.Task.Title)
	if ev.Detail != "" {
		line += " - " + ev.Detail
	}
	line += "\n"

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open operation log %s: %w", h.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append to operation log %s: %w", h.path, err)
	}
	return nil
}

// MetricsHook forwards the measured duration of a committed mutation to the
// recorder.
type MetricsHook struct {
	recorder *metrics.Recorder
}

// NewMetricsHook wires a Recorder into the after stage.
func NewMetricsHook(r *metrics.Recorder) *MetricsHook {
	return &MetricsHook{recorder: r}
}

func (h *MetricsHook) Name() string { return "metrics" }

func (h *MetricsHook) After(ev Event) error {
	h.recorder.Record(string(ev.Op), ev.Duration, time.Now())
	return nil
}

// SelfCheckHook re-reads the saved collection after each mutation and
// validates every record against the canonical schema. It is wired in only
// when the self-check toggle is enabled.
type SelfCheckHook struct {
	store store.TaskStore
}

// NewSelfCheckHook wires an integrity pass over the given store into the
// after stage.
func NewSelfCheckHook(st store.TaskStore) *SelfCheckHook {
	return &SelfCheckHook{store: st}
}

func (h *SelfCheckHook) Name() string { return "selfcheck" }

func (h *SelfCheckHook) After(ev Event) error {
	list, err := h.store.Load()
	if err != nil {
		return fmt.Errorf("reload for self-check: %w", err)
	}
	return models.CheckIntegrity(list)
}
