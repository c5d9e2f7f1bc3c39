package task

import (
	"fmt"
	"time"
)

// NoDeadlineYear is the year the backend stores for tasks without a deadline.
const NoDeadlineYear = 9999

// WorkDaySeconds is one nominal working day.
const WorkDaySeconds = 8 * 60 * 60

type Task struct {
	UUID                              string    `json:"uuid"`
	Body                              string    `json:"body"`
	TimeCreated                       time.Time `json:"timecreated"`
	TimeCompleted                     time.Time `json:"timecompleted"`
	DurationExecutionEstimatedSeconds int       `json:"duration_execution_estimated_seconds"`
	DurationExecutionRealSeconds      int       `json:"duration_execution_real_seconds"`
	TimeHardDeadline                  time.Time `json:"time_hard_dead_line"`
	Order                             int       `json:"order"`
}

// Readable holds display strings derived from a task. Never sent back to the server.
type Readable struct {
	Estimated string
	Real      string
	Deadline  string
}

func (t Task) HasDeadline() bool {
	return t.TimeHardDeadline.Year() != NoDeadlineYear
}

// Cost is the planning cost: real time wins once it exceeds the estimate.
func (t Task) Cost() int {
	if t.DurationExecutionEstimatedSeconds > t.DurationExecutionRealSeconds {
		return t.DurationExecutionEstimatedSeconds
	}
	return t.DurationExecutionRealSeconds
}

func (t Task) Readable() Readable {
	r := Readable{
		Estimated: FormatWorkDuration(t.DurationExecutionEstimatedSeconds, false),
		Real:      FormatWorkDuration(t.DurationExecutionRealSeconds, true),
	}
	if t.HasDeadline() {
		d := t.TimeHardDeadline
		r.Deadline = fmt.Sprintf("%d / %d / %d", d.Day(), int(d.Month()), d.Year())
	}
	return r
}

// FormatWorkDuration splits seconds into 8-hour days, hours and minutes:
// "2 d., 3 : 15", with a trailing ": seconds" part when withSeconds is set.
func FormatWorkDuration(seconds int, withSeconds bool) string {
	days := seconds / WorkDaySeconds
	seconds -= days * WorkDaySeconds
	hours := seconds / 3600
	seconds -= hours * 3600
	minutes := seconds / 60
	seconds -= minutes * 60

	if withSeconds {
		return fmt.Sprintf("%d d., %d : %d : %d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%d d., %d : %d", days, hours, minutes)
}

// Estimation is a duration split the way the add-task form shows it (24-hour days).
type Estimation struct {
	Days    int
	Hours   int
	Minutes int
}

func SplitCalendarDuration(seconds int) Estimation {
	days := seconds / (24 * 3600)
	seconds -= days * 24 * 3600
	hours := seconds / 3600
	seconds -= hours * 3600
	return Estimation{Days: days, Hours: hours, Minutes: seconds / 60}
}
