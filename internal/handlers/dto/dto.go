package dto

import (
	"net/http"

	"doneUI/internal/render"
	"doneUI/internal/service"
)

// AddTaskForm mirrors the add-task form fields.
type AddTaskForm struct {
	Text    string
	Days    string
	Hours   string
	Minutes string
	Month   string
	Day     string
	Year    string
}

func AddTaskFormFromRequest(r *http.Request) AddTaskForm {
	return AddTaskForm{
		Text:    r.PostFormValue("text"),
		Days:    r.PostFormValue("days"),
		Hours:   r.PostFormValue("hours"),
		Minutes: r.PostFormValue("minutes"),
		Month:   r.PostFormValue("month"),
		Day:     r.PostFormValue("day"),
		Year:    r.PostFormValue("year"),
	}
}

func (f AddTaskForm) ToInput() service.AddInput {
	return service.AddInput(f)
}

// ToForm keeps the submitted values so a rejected form can be shown again.
func (f AddTaskForm) ToForm() render.Form {
	return render.Form(f)
}

type ReorderRequest struct {
	Source      string `json:"src"`
	Destination string `json:"dst"`
}

type SoundResponse struct {
	Enabled bool `json:"enabled"`
}
