// Package hooks implements the ordered before/after callback chain that
// runs around each task mutation. Before-stage failures abort the mutation
// before anything is persisted; after-stage failures are logged and
// swallowed, never rolling back a committed write. Persistence is the sole
// commit point.
package hooks

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/taskbuddy/models"
)

// Op identifies a mutation kind.
type Op string

const (
	OpAdd    Op = "add"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
)

// opLabels maps ops to the labels written to the operation log.
var opLabels = map[Op]string{
	OpAdd:    "TASK_ADDED",
	OpToggle: "TASK_TOGGLED",
	OpDelete: "TASK_DELETED",
}

// Event carries one mutation through the pipeline. Before hooks may modify
// the task (normalization, cleaning); after hooks observe the committed
// result along with the measured duration and a human-readable detail such
// as "completed" or "reopened".
type Event struct {
	Op       Op
	Task     models.Task
	Index    int
	Detail   string
	Duration time.Duration
}

// BeforeHook runs ahead of persistence. Returning an error aborts the
// mutation with the collection untouched.
type BeforeHook interface {
	Name() string
	Before(ev *Event) error
}

// AfterHook runs after a successful save. Errors are reported to the
// pipeline's logger and otherwise ignored.
type AfterHook interface {
	Name() string
	After(ev Event) error
}

// Pipeline is an ordered chain of hooks. Stages are fixed at construction
// time and never reorder; a stage that should do nothing is configured with
// NopHook rather than discovered missing at call time.
type Pipeline struct {
	before []BeforeHook
	after  []AfterHook
	logger *slog.Logger
}

// NewPipeline builds a pipeline from explicit hook chains.
func NewPipeline(logger *slog.Logger, before []BeforeHook, after []AfterHook) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{before: before, after: after, logger: logger}
}

// RunBefore invokes the before chain in order, stopping at the first
// failure. Validation errors are never retried.
func (p *Pipeline) RunBefore(ev *Event) error {
	for _, h := range p.before {
		if err := h.Before(ev); err != nil {
			return fmt.Errorf("%s hook: %w", h.Name(), err)
		}
	}
	return nil
}

// RunAfter invokes the after chain in order. Failures are logged and
// swallowed: the mutation is already committed.
func (p *Pipeline) RunAfter(ev Event) {
	for _, h := range p.after {
		if err := h.After(ev); err != nil {
			p.logger.Warn("after-stage hook failed", "hook", h.Name(), "op", string(ev.Op), "error", err)
		}
	}
}

// NopHook satisfies both stages and does nothing. Use it when a stage is
// deliberately disabled, keeping the pipeline shape explicit.
type NopHook struct{}

func (NopHook) Name() string           { return "nop" }
func (NopHook) Before(ev *Event) error { return nil }
func (NopHook) After(ev Event) error   { return nil }
