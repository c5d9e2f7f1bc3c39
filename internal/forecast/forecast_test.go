package forecast_test

import (
	"math/rand"
	"testing"
	"time"

	"doneUI/internal/forecast"
	"doneUI/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func sameDay(t *testing.T, want, got time.Time) {
	t.Helper()
	assert.Equal(t, want.Format("2006-01-02"), got.Format("2006-01-02"))
}

var (
	monday   = day(2026, time.October, 12)
	thursday = day(2026, time.October, 15)
	friday   = day(2026, time.October, 16)
	saturday = day(2026, time.October, 17)
	sunday   = day(2026, time.October, 18)
)

func TestNextBusinessDay(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{name: "monday to tuesday", from: monday, want: day(2026, time.October, 13)},
		{name: "friday to monday", from: friday, want: day(2026, time.October, 19)},
		{name: "saturday to monday", from: saturday, want: day(2026, time.October, 19)},
		{name: "sunday to monday", from: sunday, want: day(2026, time.October, 19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sameDay(t, tt.want, forecast.NextBusinessDay(tt.from))
		})
	}
}

func TestNextBusinessDay_SaturdayAdvancesTwoDays(t *testing.T) {
	got := forecast.NextBusinessDay(saturday)
	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, 48*time.Hour, got.Sub(saturday))
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, forecast.Build(nil, monday))
	assert.Empty(t, forecast.Build([]task.Task{}, monday))
}

func TestBuild_SingleSmallTask(t *testing.T) {
	starts := []time.Time{monday, thursday, friday, saturday, sunday}

	for _, now := range starts {
		t.Run(now.Weekday().String(), func(t *testing.T) {
			entries := forecast.Build([]task.Task{task.New("a", 1, task.WithEstimate(3600))}, now)

			require.Len(t, entries, 2)
			assert.Equal(t, forecast.KindTask, entries[0].Kind)
			assert.Equal(t, forecast.KindMarker, entries[1].Kind)
			sameDay(t, forecast.NextBusinessDay(now), entries[1].Date)
		})
	}
}

func TestBuild_MarkerBetweenTasksWhenWorkdayOverflows(t *testing.T) {
	tasks := []task.Task{
		task.New("a", 1, task.WithEstimate(6*3600)),
		task.New("b", 2, task.WithEstimate(6*3600)),
	}

	entries := forecast.Build(tasks, monday)

	require.Len(t, entries, 4)
	assert.Equal(t, "a", entries[0].Task.UUID)
	assert.Equal(t, forecast.KindMarker, entries[1].Kind)
	sameDay(t, day(2026, time.October, 13), entries[1].Date)
	assert.Equal(t, "b", entries[2].Task.UUID)
	assert.Equal(t, 1, entries[2].Index)
	assert.Equal(t, forecast.KindMarker, entries[3].Kind)
	sameDay(t, day(2026, time.October, 14), entries[3].Date)
}

func TestBuild_FirstTaskNeverPrecededByMarker(t *testing.T) {
	entries := forecast.Build([]task.Task{task.New("big", 1, task.WithEstimate(3*task.WorkDaySeconds))}, monday)

	require.Len(t, entries, 2)
	assert.Equal(t, forecast.KindTask, entries[0].Kind)
	sameDay(t, day(2026, time.October, 16), entries[1].Date)
}

func TestBuild_RealSecondsExceedingEstimateCount(t *testing.T) {
	tasks := []task.Task{
		task.New("a", 1, task.WithEstimate(1800), task.WithRealSeconds(27000)),
		task.New("b", 2, task.WithEstimate(3600)),
	}

	markers := forecast.Markers(forecast.Build(tasks, monday))

	// 27000 + 3600 overflows a workday only when real seconds are used.
	require.Len(t, markers, 2)
	sameDay(t, day(2026, time.October, 13), markers[0])
	sameDay(t, day(2026, time.October, 14), markers[1])
}

func TestBuild_DrainSkipsWeekend(t *testing.T) {
	tasks := []task.Task{task.New("a", 1, task.WithEstimate(2*task.WorkDaySeconds+3600))}

	markers := forecast.Markers(forecast.Build(tasks, thursday))

	require.Len(t, markers, 1)
	sameDay(t, day(2026, time.October, 20), markers[0])
}

func TestBuild_MarkersNeverOnWeekend(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for start := 0; start < 14; start++ {
		now := monday.AddDate(0, 0, start)
		tasks := make([]task.Task, 0, 12)
		for i := 0; i < 12; i++ {
			tasks = append(tasks, task.New("t", i,
				task.WithEstimate(rng.Intn(3*task.WorkDaySeconds)),
				task.WithRealSeconds(rng.Intn(task.WorkDaySeconds)),
			))
		}

		for _, d := range forecast.Markers(forecast.Build(tasks, now)) {
			assert.NotEqual(t, time.Saturday, d.Weekday())
			assert.NotEqual(t, time.Sunday, d.Weekday())
			assert.True(t, d.After(now))
		}
	}
}

func TestFormatMarker(t *testing.T) {
	assert.Equal(t, "📅 Will be done by 2026-10-19 ( monday )", forecast.FormatMarker(day(2026, time.October, 19)))
	assert.Equal(t, "📅 Will be done by 2026-3-5 ( thursday )", forecast.FormatMarker(day(2026, time.March, 5)))
}
