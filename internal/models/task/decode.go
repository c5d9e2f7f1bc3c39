package task

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"doneUI/internal/textcodec"
)

var ErrMalformedPayload = errors.New("malformed payload")

// wireTask mirrors Task but keeps order optional so a missing key is detectable.
type wireTask struct {
	UUID                              string    `json:"uuid"`
	Body                              string    `json:"body"`
	TimeCreated                       time.Time `json:"timecreated"`
	TimeCompleted                     time.Time `json:"timecompleted"`
	DurationExecutionEstimatedSeconds int       `json:"duration_execution_estimated_seconds"`
	DurationExecutionRealSeconds      int       `json:"duration_execution_real_seconds"`
	TimeHardDeadline                  time.Time `json:"time_hard_dead_line"`
	Order                             *int      `json:"order"`
}

func isEmptyPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeList parses a serialized task collection. Empty input and JSON null mean
// "no tasks". Bodies come back as display text.
func DecodeList(payload []byte) ([]Task, error) {
	return decode(payload, true)
}

// DecodeTodayResults parses the completed-today collection. Completed tasks may
// come without an order key.
func DecodeTodayResults(payload []byte) ([]Task, error) {
	return decode(payload, false)
}

func decode(payload []byte, requireOrder bool) ([]Task, error) {
	if isEmptyPayload(payload) {
		return nil, nil
	}

	var wire []wireTask
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	tasks := make([]Task, 0, len(wire))
	for i, w := range wire {
		order := 0
		switch {
		case w.Order != nil:
			order = *w.Order
		case requireOrder:
			return nil, fmt.Errorf("%w: task %d has no order", ErrMalformedPayload, i)
		}
		if w.DurationExecutionEstimatedSeconds < 0 || w.DurationExecutionRealSeconds < 0 {
			return nil, fmt.Errorf("%w: task %d has negative duration", ErrMalformedPayload, i)
		}
		tasks = append(tasks, Task{
			UUID:                              w.UUID,
			Body:                              textcodec.Clean(w.Body),
			TimeCreated:                       w.TimeCreated,
			TimeCompleted:                     w.TimeCompleted,
			DurationExecutionEstimatedSeconds: w.DurationExecutionEstimatedSeconds,
			DurationExecutionRealSeconds:      w.DurationExecutionRealSeconds,
			TimeHardDeadline:                  w.TimeHardDeadline,
			Order:                             order,
		})
	}
	return tasks, nil
}

// SortByOrder orders tasks ascending by their numeric order key.
func SortByOrder(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

func DecodeGamification(payload []byte) (Gamification, error) {
	if isEmptyPayload(payload) {
		return DefaultGamification(), nil
	}
	g := DefaultGamification()
	if err := json.Unmarshal(payload, &g); err != nil {
		return Gamification{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return g, nil
}

func DecodeBuildInfo(payload []byte) (BuildInfo, error) {
	var info BuildInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return BuildInfo{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return info, nil
}
