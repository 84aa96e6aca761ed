// Package task exposes the task-list operations consumed by the HTTP and
// CLI bindings: list, add, toggle, delete and the metrics report.
//
// Tasks are addressed positionally. Indices shift when a task is deleted,
// so clients must re-fetch the list after every mutation before issuing
// another index-based operation.
package task

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/josephgoksu/taskbuddy/internal/hooks"
	"github.com/josephgoksu/taskbuddy/internal/metrics"
	"github.com/josephgoksu/taskbuddy/models"
	"github.com/josephgoksu/taskbuddy/store"
)

// Service coordinates one mutation at a time: before-stage hooks, the
// load-mutate-save cycle against the store, and after-stage hooks. All
// collaborators are passed in explicitly.
type Service struct {
	store     store.TaskStore
	pipeline  *hooks.Pipeline
	recorder  *metrics.Recorder
	validator *models.Validator
	logger    *slog.Logger
}

// NewService wires a Service from its collaborators.
func NewService(st store.TaskStore, p *hooks.Pipeline, rec *metrics.Recorder, v *models.Validator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, pipeline: p, recorder: rec, validator: v, logger: logger}
}

// List returns the current task collection in display order.
func (s *Service) List() (models.TaskList, error) {
	return s.store.Load()
}

// Add validates and appends a new task, returning the stored record.
// It fails with models.ErrInvalidTitle when the title is empty after
// trimming; nothing is persisted in that case.
func (s *Service) Add(title string) (models.Task, error) {
	token := s.recorder.Start(string(hooks.OpAdd))

	ev := hooks.Event{Op: hooks.OpAdd, Task: models.NewTask(title)}
	if err := s.pipeline.RunBefore(&ev); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, err
	}

	list, err := s.store.Load()
	if err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("load tasks: %w", err)
	}

	ev.Index = len(list)
	list = append(list, ev.Task)
	if err := s.store.Save(list); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	ev.Duration = s.recorder.Stop(token)
	s.pipeline.RunAfter(ev)
	return ev.Task, nil
}

// Toggle flips the completion flag of the task at index and returns the
// updated record. It fails with models.ErrIndexOutOfRange for a stale or
// bad index.
func (s *Service) Toggle(index int) (models.Task, error) {
	token := s.recorder.Start(string(hooks.OpToggle))

	list, err := s.store.Load()
	if err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("load tasks: %w", err)
	}
	if err := s.validator.ValidateIndex(index, len(list)); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, err
	}

	ev := hooks.Event{Op: hooks.OpToggle, Task: list[index], Index: index}
	if err := s.pipeline.RunBefore(&ev); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, err
	}

	ev.Task.Done = !ev.Task.Done
	list[index] = ev.Task
	if err := s.store.Save(list); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	if ev.Task.Done {
		ev.Detail = "completed"
	} else {
		ev.Detail = "reopened"
	}
	ev.Duration = s.recorder.Stop(token)
	s.pipeline.RunAfter(ev)
	return ev.Task, nil
}

// Delete removes the task at index, shifting later indices down by one, and
// returns the removed record. It fails with models.ErrIndexOutOfRange for a
// stale or bad index.
func (s *Service) Delete(index int) (models.Task, error) {
	token := s.recorder.Start(string(hooks.OpDelete))

	list, err := s.store.Load()
	if err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("load tasks: %w", err)
	}
	if err := s.validator.ValidateIndex(index, len(list)); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, err
	}

	ev := hooks.Event{Op: hooks.OpDelete, Task: list[index], Index: index}
	if err := s.pipeline.RunBefore(&ev); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, err
	}

	list = slices.Delete(list, index, index+1)
	if err := s.store.Save(list); err != nil {
		s.recorder.Stop(token)
		return models.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	ev.Duration = s.recorder.Stop(token)
	s.pipeline.RunAfter(ev)
	return ev.Task, nil
}

// Report returns the per-operation metrics summaries.
func (s *Service) Report() map[string]metrics.Summary {
	return s.recorder.Report()
}
