package service

import (
	"context"

	"doneUI/internal/models/task"
	"doneUI/internal/render"
	"doneUI/internal/sounds"
)

// Backend is the task storage API. Every mutating call answers with the full
// serialized task collection.
type Backend interface {
	GetTasks(ctx context.Context) ([]byte, error)
	GetTodayResults(ctx context.Context) ([]byte, error)
	GetGamification(ctx context.Context) ([]byte, error)
	Version(ctx context.Context) ([]byte, error)
	AddTask(ctx context.Context, payload string) ([]byte, error)
	CompleteTask(ctx context.Context, uuid string) ([]byte, error)
	RemoveTask(ctx context.Context, uuid string) ([]byte, error)
	RearrangeTasks(ctx context.Context, source, destination string) ([]byte, error)
	UpdateTaskExecutionRealSeconds(ctx context.Context, uuid string, seconds int) error
}

type Renderer interface {
	Tasks(payload []byte, stamp uint64) (render.Rendered, error)
	TaskList(tasks []task.Task, stamp uint64) (render.Rendered, error)
	TodayResults(payload []byte, stamp uint64) (render.Rendered, error)
	Points(g task.Gamification, soundEnabled bool, stamp uint64) error
	Footer(info task.BuildInfo, stamp uint64) error
}

// Confirmer asks the user to approve a destructive action. Declining is not an error.
type Confirmer interface {
	Confirm(ctx context.Context, kind render.ConfirmKind, message string) bool
}

// Confirmed is a Confirmer whose answer is already known, e.g. from a submitted form.
type Confirmed bool

func (c Confirmed) Confirm(context.Context, render.ConfirmKind, string) bool {
	return bool(c)
}

type SoundPlayer interface {
	Play(e sounds.Effect) bool
	Enabled() bool
	Toggle() (bool, error)
}

// Timer is the single active task timer.
type Timer interface {
	Start(uuid string, startSeconds int) error
	Stop() (string, int, error)
	Forget(uuid string) bool
	Active() string
}
