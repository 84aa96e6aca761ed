// Package metrics records per-operation timings with a bounded history and
// incrementally maintained summary statistics.
package metrics

import (
	"fmt"
	"sync"
	"time"
)

// DefaultHistorySize caps the number of retained entries; the oldest entry
// is dropped on overflow.
const DefaultHistorySize = 1000

// Entry is one recorded operation measurement.
type Entry struct {
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Summary aggregates the recorded durations for one operation kind.
// Durations are reported in milliseconds.
type Summary struct {
	Count int     `json:"count"`
	AvgMS float64 `json:"avg_ms"`
	MinMS float64 `json:"min_ms"`
	MaxMS float64 `json:"max_ms"`
}

// running holds the incremental aggregate for one operation kind. Stats are
// updated per record, never recomputed from the history.
type running struct {
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// Recorder measures operation durations. Start returns a token that Stop
// resolves to a duration; Record feeds the bounded history and the running
// summaries.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	seq      uint64
	history  []Entry
	inflight map[string]time.Time
	stats    map[string]*running
}

// NewRecorder creates a Recorder keeping at most capacity history entries.
// A capacity of zero or less falls back to DefaultHistorySize.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &Recorder{
		capacity: capacity,
		inflight: make(map[string]time.Time),
		stats:    make(map[string]*running),
	}
}

// Start begins timing an operation and returns a token for Stop. The token
// combines the operation name, a nanosecond timestamp and a sequence number
// so rapid calls for the same operation never collide.
func (r *Recorder) Start(operation string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	token := fmt.Sprintf("%s-%d-%d", operation, time.Now().UnixNano(), r.seq)
	r.inflight[token] = time.Now()
	return token
}

// Stop resolves a token to the elapsed duration and removes the in-flight
// entry. An unknown token yields zero, so a double Stop is harmless.
func (r *Recorder) Stop(token string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	started, ok := r.inflight[token]
	if !ok {
		return 0
	}
	delete(r.inflight, token)
	return time.Since(started)
}

// Record appends an entry to the bounded history and folds the duration
// into the running summary for the operation kind.
func (r *Recorder) Record(operation string, d time.Duration, ts time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, Entry{Operation: operation, Duration: d, Timestamp: ts})
	if len(r.history) > r.capacity {
		r.history = r.history[len(r.history)-r.capacity:]
	}

	st, ok := r.stats[operation]
	if !ok {
		st = &running{min: d, max: d}
		r.stats[operation] = st
	}
	st.count++
	st.total += d
	if d < st.min {
		st.min = d
	}
	if d > st.max {
		st.max = d
	}
}

// History returns a copy of the retained entries, oldest first.
func (r *Recorder) History() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.history))
	copy(out, r.history)
	return out
}

// Report returns the per-operation summaries. The map is empty until the
// first Record call.
func (r *Recorder) Report() map[string]Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := make(map[string]Summary, len(r.stats))
	for op, st := range r.stats {
		report[op] = Summary{
			Count: st.count,
			AvgMS: toMillis(st.total) / float64(st.count),
			MinMS: toMillis(st.min),
			MaxMS: toMillis(st.max),
		}
	}
	return report
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
