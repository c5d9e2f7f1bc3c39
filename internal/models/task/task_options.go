package task

import (
	"time"
)

type TaskOption func(*Task)

// New builds a task without a deadline and applies the options in order.
func New(uuid string, order int, options ...TaskOption) Task {
	t := Task{
		UUID:             uuid,
		Order:            order,
		TimeHardDeadline: time.Date(NoDeadlineYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&t)
		}
	}
	return t
}

func WithBody(body string) TaskOption {
	return func(t *Task) {
		t.Body = body
	}
}

func WithEstimate(seconds int) TaskOption {
	if seconds < 0 {
		return nil
	}
	return func(t *Task) {
		t.DurationExecutionEstimatedSeconds = seconds
	}
}

func WithRealSeconds(seconds int) TaskOption {
	if seconds < 0 {
		return nil
	}
	return func(t *Task) {
		t.DurationExecutionRealSeconds = seconds
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	if deadline.IsZero() {
		return nil
	}
	return func(t *Task) {
		t.TimeHardDeadline = deadline
	}
}
