package task

import "time"

type Gamification struct {
	TotalPoints        int        `json:"total_points"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	LastCompletionDate *time.Time `json:"last_completion_date"`
	Level              int        `json:"level"`
	CompletedTasks     int        `json:"completed_tasks"`
	FirstTaskDate      *time.Time `json:"first_task_date"`
	Achievements       []string   `json:"achievements"`
}

// DefaultGamification is shown when the backend cannot be reached.
func DefaultGamification() Gamification {
	return Gamification{
		Level:        1,
		Achievements: []string{},
	}
}

func (g Gamification) HasAchievement(id string) bool {
	for _, a := range g.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// BuildInfo is the payload of /api/version.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	BuildDate string `json:"buildDate"`
}
