// Package forecast projects delivery dates for an ordered task list under an
// 8-hour workday model with weekends excluded.
package forecast

import (
	"fmt"
	"strings"
	"time"

	"doneUI/internal/models/task"
)

type Kind int

const (
	KindTask Kind = iota
	KindMarker
)

// Entry is one row of the rendered list: a task or a forecast marker placed
// between tasks.
type Entry struct {
	Kind  Kind
	Task  task.Task
	Index int
	Date  time.Time
}

// Build walks tasks in the given order, accumulating max(estimated, real) seconds.
// Each time the accumulator passes a workday a marker dated to the cursor is
// emitted before the task (never before the first one) and whole workdays are
// drained, moving the cursor one business day each. The remainder is always under
// a workday after draining, so the closing marker uses the cursor as is. The
// caller sorts tasks.
func Build(tasks []task.Task, now time.Time) []Entry {
	if len(tasks) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(tasks)*2)
	cursor := now
	unplanned := 0
	advanced := false

	for i, t := range tasks {
		unplanned += t.Cost()

		if !advanced {
			cursor = NextBusinessDay(cursor)
			advanced = true
		}

		if unplanned > task.WorkDaySeconds && i != 0 {
			entries = append(entries, Entry{Kind: KindMarker, Date: cursor})
		}

		entries = append(entries, Entry{Kind: KindTask, Task: t, Index: i})

		if unplanned > task.WorkDaySeconds {
			for unplanned >= task.WorkDaySeconds {
				cursor = NextBusinessDay(cursor)
				unplanned -= task.WorkDaySeconds
			}
		}
	}

	entries = append(entries, Entry{Kind: KindMarker, Date: cursor})

	return entries
}

// NextBusinessDay moves d one calendar day forward and then past any weekend.
func NextBusinessDay(d time.Time) time.Time {
	d = d.AddDate(0, 0, 1)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, 2)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Markers returns only the marker dates of a plan.
func Markers(entries []Entry) []time.Time {
	var dates []time.Time
	for _, e := range entries {
		if e.Kind == KindMarker {
			dates = append(dates, e.Date)
		}
	}
	return dates
}

// FormatMarker renders the marker label, e.g. "📅 Will be done by 2026-10-19 ( monday )".
func FormatMarker(d time.Time) string {
	return fmt.Sprintf("📅 Will be done by %d-%d-%d ( %s )",
		d.Year(), int(d.Month()), d.Day(), strings.ToLower(d.Weekday().String()))
}
