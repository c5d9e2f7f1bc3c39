package handlers

import (
	"doneUI/internal/render"

	"github.com/go-chi/chi/v5"
)

// Register mounts the page routes on r.
func (s *TaskHandler) Register(r chi.Router) {
	r.Get("/", s.Index) // GET /?edit={uuid}

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", s.PostTask)       // POST /tasks
		r.Post("/reorder", s.Reorder) // POST /tasks/reorder

		r.Route("/{uuid}", func(r chi.Router) {
			r.Get("/complete", s.ConfirmPrompt(render.ConfirmComplete)) // GET /tasks/{uuid}/complete
			r.Post("/complete", s.CompleteTask)                         // POST /tasks/{uuid}/complete
			r.Get("/remove", s.ConfirmPrompt(render.ConfirmDelete))     // GET /tasks/{uuid}/remove
			r.Post("/remove", s.RemoveTask)                             // POST /tasks/{uuid}/remove

			r.Post("/drag", s.DragStart)         // POST /tasks/{uuid}/drag
			r.Post("/timer/start", s.StartTimer) // POST /tasks/{uuid}/timer/start
			r.Post("/timer/stop", s.StopTimer)   // POST /tasks/{uuid}/timer/stop
		})
	})

	r.Post("/preferences/sound/toggle", s.ToggleSound)
	r.Get("/fragments/{name}", s.Fragment)
	r.Get("/health", s.HealthCheck)
}
