package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"doneUI/internal/handlers/dto"
	"doneUI/internal/logger"
	"doneUI/internal/render"
	"doneUI/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const alertUnavailable = "Server is unavailable, the list may be outdated"

// stampHeader carries the container stamp so the page can drop stale fragments.
const stampHeader = "X-Content-Stamp"

type TaskHandler struct {
	TaskService TaskService
	Renderer    PageRenderer
}

func NewTaskHandler(taskService TaskService, renderer PageRenderer) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		Renderer:    renderer,
	}
}

// writePage renders the full page. Queued achievement notifications are
// drained into it so each one is shown once.
func (s *TaskHandler) writePage(w http.ResponseWriter, code int, page render.Page) {
	if list := s.TaskService.TakeAchievements(); len(list) > 0 {
		notes, err := s.Renderer.Achievements(list)
		if err != nil {
			logger.Warn("HTTP: уведомления о достижениях не отрисованы", zap.Error(err))
		}
		for _, n := range notes {
			page.Achievements = append(page.Achievements, template.HTML(n))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.Renderer.WritePage(w, page); err != nil {
		logger.Error("HTTP: ошибка отрисовки страницы", err)
	}
}

// alertFor turns a service error into the message shown above the form.
func alertFor(err error) string {
	if businessErr, ok := asBusinessError(err); ok {
		if businessErr.Code == service.CodeTransport || businessErr.Code == service.CodeMalformed {
			return alertUnavailable
		}
		return businessErr.Message
	}
	return err.Error()
}

func statusFor(err error) int {
	if businessErr, ok := asBusinessError(err); ok {
		return mapBusinessErrorToHTTP(businessErr.Code)
	}
	return http.StatusInternalServerError
}

// Index reloads the task list and shows the page. ?edit=<uuid> prefills the
// add form with that task.
func (s *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	page := render.Page{}
	code := http.StatusOK

	if err := s.TaskService.Refresh(r.Context()); err != nil {
		logger.Warn("HTTP: список задач не обновлён", zap.Error(err))
		page.Alert = alertFor(err)
	}

	if id := r.URL.Query().Get("edit"); id != "" {
		form, err := s.TaskService.EditForm(id)
		if err != nil {
			logger.Warn("HTTP: задача для редактирования не найдена",
				zap.String("task", id),
				zap.Error(err))
			page.Alert = alertFor(err)
			code = statusFor(err)
		}
		page.Form = form
	}

	s.writePage(w, code, page)

	logger.Info("HTTP_OUT: страница отдана",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", code))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: ошибка чтения формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	form := dto.AddTaskFormFromRequest(r)
	if err := s.TaskService.Add(r.Context(), form.ToInput()); err != nil {
		logger.Warn("HTTP: задача не создана", zap.Error(err))

		if wantsJSON(r) {
			if !handleBusinessError(w, err) {
				responseWithError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		code := statusFor(err)
		s.writePage(w, code, render.Page{Alert: alertFor(err), Form: form.ToForm()})
		return
	}

	logger.Info("HTTP_OUT: задача создана",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusSeeOther))

	redirectHome(w, r)
}

// ConfirmPrompt shows the page with a confirmation modal for the action
// named by kind. The modal posts back to the same path.
func (s *TaskHandler) ConfirmPrompt(kind render.ConfirmKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.HttpRequestInfo(r, "HTTP_IN:")
		id := chi.URLParam(r, "uuid")

		msg, err := s.TaskService.ConfirmMessage(kind, id)
		if err != nil {
			logger.Warn("HTTP: подтверждение для неизвестной задачи",
				zap.String("task", id),
				zap.Error(err))
			s.writePage(w, statusFor(err), render.Page{Alert: alertFor(err)})
			return
		}

		modal, err := s.Renderer.Confirm(kind, msg, r.URL.Path)
		if err != nil {
			logger.Error("HTTP: окно подтверждения не отрисовано", err)
			responseWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writePage(w, http.StatusOK, render.Page{Confirm: template.HTML(modal)})
	}
}

func (s *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	s.confirmedAction(w, r, s.TaskService.Complete)
}

func (s *TaskHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	s.confirmedAction(w, r, s.TaskService.Remove)
}

type confirmedFunc func(ctx context.Context, uuid string, c service.Confirmer) (bool, error)

func (s *TaskHandler) confirmedAction(w http.ResponseWriter, r *http.Request, action confirmedFunc) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")
	id := chi.URLParam(r, "uuid")

	confirmed := service.Confirmed(r.PostFormValue("confirmed") == "true")
	done, err := action(r.Context(), id, confirmed)
	if err != nil {
		logger.Warn("HTTP: действие с задачей не выполнено",
			zap.String("task", id),
			zap.Error(err))
		if wantsJSON(r) {
			if !handleBusinessError(w, err) {
				responseWithError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		s.writePage(w, statusFor(err), render.Page{Alert: alertFor(err)})
		return
	}

	logger.Info("HTTP_OUT: действие с задачей",
		zap.String("task", id),
		zap.Bool("done", done),
		zap.Duration("ms", time.Since(start)))

	if wantsJSON(r) {
		responseWithJSON(w, http.StatusOK, toPayload("done", done))
		return
	}
	redirectHome(w, r)
}

// Reorder accepts src/dst either as a JSON body or as form values.
func (s *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.ReorderRequest
	if checkContentType(r, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("HTTP: ошибка чтения JSON",
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))
			responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
			return
		}
	} else {
		request.Source = r.PostFormValue("src")
		request.Destination = r.PostFormValue("dst")
	}

	if request.Source == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "src"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "src не может быть пустым")
		return
	}

	if err := s.TaskService.Reorder(r.Context(), request.Source, request.Destination); err != nil {
		if !handleBusinessError(w, err) {
			logger.Error("HTTP: Ошибка Service", err)
			responseWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.writeFragment(w, render.ContainerTasks)
}

// DragStart is posted by the page when a task is picked up.
func (s *TaskHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	if err := s.TaskService.DragStart(id); err != nil {
		logger.Warn("HTTP: перетаскивание неизвестной задачи", zap.String("task", id))
		if !handleBusinessError(w, err) {
			responseWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	s.timerAction(w, r, s.TaskService.StartTimer(chi.URLParam(r, "uuid")))
}

func (s *TaskHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	s.timerAction(w, r, s.TaskService.StopTimer())
}

func (s *TaskHandler) timerAction(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		logger.Warn("HTTP: ошибка таймера", zap.Error(err))
		if wantsJSON(r) {
			if !handleBusinessError(w, err) {
				responseWithError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		s.writePage(w, statusFor(err), render.Page{Alert: alertFor(err)})
		return
	}
	if wantsJSON(r) {
		responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
		return
	}
	redirectHome(w, r)
}

func (s *TaskHandler) ToggleSound(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	enabled, err := s.TaskService.ToggleSound()
	if err != nil {
		logger.Error("HTTP: настройка звука не сохранена", err)
	}

	if wantsJSON(r) {
		code := http.StatusOK
		if err != nil {
			code = http.StatusInternalServerError
		}
		responseWithJSON(w, code, toPayload("sound", dto.SoundResponse{Enabled: enabled}))
		return
	}
	redirectHome(w, r)
}

// Fragment returns the current contents of one page container.
func (s *TaskHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	s.writeFragment(w, chi.URLParam(r, "name"))
}

func (s *TaskHandler) writeFragment(w http.ResponseWriter, name string) {
	html, err := s.Renderer.Document().Content(name)
	if err != nil {
		logger.Warn("HTTP: неизвестный контейнер", zap.String("name", name))
		responseWithError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set(stampHeader, strconv.FormatUint(s.Renderer.Document().Stamp(name), 10))
	responseWithHTML(w, http.StatusOK, html)
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("timestamp", time.Now().Format(time.RFC3339)),
	)
}
