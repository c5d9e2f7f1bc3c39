// Package gamification turns the server-side score into display data: level,
// progress towards the next level and unlocked achievements. Points are never
// computed here.
package gamification

import (
	"math"
	"time"

	"doneUI/internal/models/task"
)

type Level struct {
	Number int
	Title  string
	Points int
}

var Levels = []Level{
	{Number: 1, Points: 0, Title: "Done"},
	{Number: 2, Points: 500, Title: "Apprentice"},
	{Number: 3, Points: 1500, Title: "Journeyman"},
	{Number: 4, Points: 3000, Title: "Expert"},
	{Number: 5, Points: 5000, Title: "Master"},
	{Number: 6, Points: 8000, Title: "Champion"},
	{Number: 7, Points: 12000, Title: "Hero"},
	{Number: 8, Points: 17000, Title: "Legend"},
	{Number: 9, Points: 25000, Title: "Mythic"},
	{Number: 10, Points: 50000, Title: "Deity"},
}

func LevelFor(points int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if points >= Levels[i].Points {
			return Levels[i]
		}
	}
	return Levels[0]
}

// Progress towards the next level. DaysToNext is -1 when there is not enough
// history to make a prediction.
type Progress struct {
	Level        Level
	Percent      int
	PointsNeeded int
	DaysToNext   int
}

func ComputeProgress(g task.Gamification, now time.Time) Progress {
	current := LevelFor(g.TotalPoints)
	p := Progress{Level: current, DaysToNext: -1}

	if current.Number >= len(Levels) {
		p.Percent = 100
		p.DaysToNext = 0
		return p
	}
	next := Levels[current.Number]

	needed := next.Points - current.Points
	if needed > 0 {
		p.Percent = min((g.TotalPoints-current.Points)*100/needed, 100)
	}
	p.PointsNeeded = max(0, next.Points-g.TotalPoints)

	if g.CompletedTasks > 0 && g.FirstTaskDate != nil && g.TotalPoints > 0 {
		days := max(1, int(now.Sub(*g.FirstTaskDate).Hours()/24))
		perDay := float64(g.TotalPoints) / float64(days)
		p.DaysToNext = int(math.Ceil(float64(p.PointsNeeded) / perDay))
	}
	return p
}

type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

var Achievements = []Achievement{
	{ID: "firstTask", Name: "First Steps", Description: "Complete your first task", Icon: "🎯"},
	{ID: "streak3", Name: "On Fire", Description: "3 day streak", Icon: "🔥"},
	{ID: "streak7", Name: "Week Warrior", Description: "7 day streak", Icon: "⚡"},
	{ID: "streak30", Name: "Monthly Master", Description: "30 day streak", Icon: "🌟"},
	{ID: "points1000", Name: "Point Collector", Description: "Earn 1000 points", Icon: "💎"},
	{ID: "points5000", Name: "Point Master", Description: "Earn 5000 points", Icon: "👑"},
}

func earned(id string, g task.Gamification) bool {
	switch id {
	case "firstTask":
		return g.CompletedTasks == 1
	case "streak3":
		return g.CurrentStreak >= 3
	case "streak7":
		return g.CurrentStreak >= 7
	case "streak30":
		return g.CurrentStreak >= 30
	case "points1000":
		return g.TotalPoints >= 1000
	case "points5000":
		return g.TotalPoints >= 5000
	}
	return false
}

// NewAchievements lists achievements the data qualifies for that the server
// has not recorded yet.
func NewAchievements(g task.Gamification) []Achievement {
	var out []Achievement
	for _, a := range Achievements {
		if earned(a.ID, g) && !g.HasAchievement(a.ID) {
			out = append(out, a)
		}
	}
	return out
}
