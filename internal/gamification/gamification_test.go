package gamification_test

import (
	"testing"
	"time"

	"doneUI/internal/gamification"
	"doneUI/internal/models/task"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{points: 0, want: "Done"},
		{points: 499, want: "Done"},
		{points: 500, want: "Apprentice"},
		{points: 4999, want: "Expert"},
		{points: 50000, want: "Deity"},
		{points: 1_000_000, want: "Deity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gamification.LevelFor(tt.points).Title, tt.points)
	}
}

func TestComputeProgress(t *testing.T) {
	now := time.Date(2026, time.October, 12, 12, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)

	tests := []struct {
		name string
		in   task.Gamification
		want gamification.Progress
	}{
		{
			name: "no history",
			in:   task.DefaultGamification(),
			want: gamification.Progress{Level: gamification.Levels[0], Percent: 0, PointsNeeded: 500, DaysToNext: -1},
		},
		{
			name: "halfway with history",
			in:   task.Gamification{TotalPoints: 1000, CompletedTasks: 8, FirstTaskDate: &tenDaysAgo},
			want: gamification.Progress{Level: gamification.Levels[1], Percent: 50, PointsNeeded: 500, DaysToNext: 5},
		},
		{
			name: "max level",
			in:   task.Gamification{TotalPoints: 60000, CompletedTasks: 300, FirstTaskDate: &tenDaysAgo},
			want: gamification.Progress{Level: gamification.Levels[9], Percent: 100, PointsNeeded: 0, DaysToNext: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gamification.ComputeProgress(tt.in, now))
		})
	}
}

func TestNewAchievements(t *testing.T) {
	g := task.Gamification{
		TotalPoints:    1200,
		CurrentStreak:  7,
		CompletedTasks: 1,
		Achievements:   []string{"streak3"},
	}

	var ids []string
	for _, a := range gamification.NewAchievements(g) {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"firstTask", "streak7", "points1000"}, ids)

	assert.Empty(t, gamification.NewAchievements(task.DefaultGamification()))
}
