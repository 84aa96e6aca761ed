// Package ui renders task lists and reports for terminal output.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephgoksu/taskbuddy/internal/metrics"
	"github.com/josephgoksu/taskbuddy/models"
)

// RenderTaskList formats the collection for the terminal, one task per
// line, numbered from 1 the way the list is addressed on the command line.
// With plain set, styling is skipped so the output pipes cleanly.
func RenderTaskList(list models.TaskList, plain bool) string {
	if len(list) == 0 {
		return "Your task list is empty."
	}

	var b strings.Builder
	for i, t := range list {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		line := fmt.Sprintf("%3d. %s %s", i+1, box, t.Title)
		if !plain {
			if t.Done {
				line = StyleDone.Render(line)
			} else {
				line = StyleTitle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReport formats the metrics summary table, operations sorted by
// name.
func RenderReport(report map[string]metrics.Summary, plain bool) string {
	if len(report) == 0 {
		return "No operations recorded yet."
	}

	ops := make([]string, 0, len(report))
	for op := range report {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	var b strings.Builder
	header := fmt.Sprintf("%-10s %6s %10s %10s %10s", "operation", "count", "avg(ms)", "min(ms)", "max(ms)")
	if !plain {
		header = StyleSubtle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for _, op := range ops {
		s := report[op]
		b.WriteString(fmt.Sprintf("%-10s %6d %10.2f %10.2f %10.2f\n", op, s.Count, s.AvgMS, s.MinMS, s.MaxMS))
	}
	return strings.TrimRight(b.String(), "\n")
}
