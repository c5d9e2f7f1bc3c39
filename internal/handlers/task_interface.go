package handlers

import (
	"context"
	"io"

	"doneUI/internal/gamification"
	"doneUI/internal/render"
	"doneUI/internal/service"
)

type TaskService interface {
	Refresh(ctx context.Context) error
	Add(ctx context.Context, in service.AddInput) error
	Complete(ctx context.Context, uuid string, c service.Confirmer) (bool, error)
	Remove(ctx context.Context, uuid string, c service.Confirmer) (bool, error)
	Reorder(ctx context.Context, source, destination string) error
	DragStart(uuid string) error
	StartTimer(uuid string) error
	StopTimer() error
	ToggleSound() (bool, error)
	EditForm(uuid string) (render.Form, error)
	ConfirmMessage(kind render.ConfirmKind, uuid string) (string, error)
	TakeAchievements() []gamification.Achievement
}

type PageRenderer interface {
	WritePage(w io.Writer, p render.Page) error
	Confirm(kind render.ConfirmKind, message, action string) (string, error)
	Achievements(list []gamification.Achievement) ([]string, error)
	Document() *render.Document
}
