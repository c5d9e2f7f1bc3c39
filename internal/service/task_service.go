// Package service issues task mutations against the backend and repaints the
// page from each response.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"doneUI/internal/client"
	"doneUI/internal/gamification"
	"doneUI/internal/logger"
	"doneUI/internal/models/task"
	"doneUI/internal/render"
	"doneUI/internal/sounds"
	"doneUI/internal/timer"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type TaskService struct {
	backend  Backend
	renderer Renderer
	sounds   SoundPlayer
	timer    Timer
	now      func() time.Time

	// stamps orders responses by arrival; a render only lands when its stamp
	// is newer than what the container shows.
	stamps atomic.Uint64

	mu           sync.Mutex
	tasks        []task.Task
	gamification task.Gamification
	achievements []gamification.Achievement
	announced    map[string]bool
}

type Option func(*TaskService)

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func WithSounds(p SoundPlayer) Option {
	return func(s *TaskService) {
		s.sounds = p
	}
}

func NewTaskService(backend Backend, renderer Renderer, opts ...Option) *TaskService {
	s := &TaskService{
		backend:      backend,
		renderer:     renderer,
		now:          time.Now,
		gamification: task.DefaultGamification(),
		announced:    make(map[string]bool),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AttachTimer connects the active task timer. The timer ticks back into
// TickRealSeconds, so it is created after the service.
func (s *TaskService) AttachTimer(t Timer) {
	s.timer = t
}

func (s *TaskService) stamp() uint64 {
	return s.stamps.Add(1)
}

func (s *TaskService) play(e sounds.Effect) {
	if s.sounds != nil {
		s.sounds.Play(e)
	}
}

func (s *TaskService) soundEnabled() bool {
	return s.sounds != nil && s.sounds.Enabled()
}

// renderTasks stamps a task collection response and repaints the list. The
// snapshot used by the timer and edit form follows only applied renders.
func (s *TaskService) renderTasks(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.renderer.Tasks(payload, s.stamp())
	if err != nil {
		if errors.Is(err, task.ErrMalformedPayload) {
			return NewBusinessError(CodeMalformed, "некорректный ответ бэкенда", err)
		}
		return fmt.Errorf("отрисовка задач: %w", err)
	}
	if res.Applied {
		s.tasks = res.Tasks
		if n := len(res.Markers); n > 0 {
			logger.Debug("Service: список задач отрисован",
				zap.Int("tasks", len(res.Tasks)),
				zap.Time("done_by", res.Markers[n-1]))
		}
	}
	return nil
}

// repaintSnapshot redraws the last known list, e.g. after a timer tick.
func (s *TaskService) repaintSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]task.Task, len(s.tasks))
	copy(tasks, s.tasks)

	res, err := s.renderer.TaskList(tasks, s.stamp())
	if err != nil {
		return fmt.Errorf("отрисовка задач: %w", err)
	}
	if res.Applied {
		s.tasks = res.Tasks
	}
	return nil
}

// Tasks returns a copy of the last rendered list.
func (s *TaskService) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskService) findTask(uuid string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.UUID == uuid {
			return t, true
		}
	}
	return task.Task{}, false
}

// Bootstrap loads everything the page shows. Only the task list is required;
// the other panels fall back to defaults when the backend fails them.
func (s *TaskService) Bootstrap(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Refresh(ctx)
	})
	g.Go(func() error {
		if err := s.RefreshToday(ctx); err != nil {
			logger.Warn("Service: результаты дня недоступны", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if err := s.RefreshGamification(ctx); err != nil {
			logger.Warn("Service: данные геймификации недоступны", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		s.LoadBuildInfo(ctx)
		return nil
	})

	return g.Wait()
}

// Refresh re-reads the whole task list.
func (s *TaskService) Refresh(ctx context.Context) error {
	payload, err := s.backend.GetTasks(ctx)
	if err != nil {
		return newTransportError("getTasks", err)
	}
	return s.renderTasks(payload)
}

func (s *TaskService) Add(ctx context.Context, in AddInput) error {
	nt, err := ValidateAdd(in, s.now())
	if err != nil {
		logger.Info("Service: форма задачи отклонена", zap.Error(err))
		return err
	}

	payload, err := s.backend.AddTask(ctx, client.AddPayload(nt.EncodedBody, nt.EstimationSeconds, nt.Month, nt.Day, nt.Year))
	if err != nil {
		return newTransportError("addTask", err)
	}
	if err := s.renderTasks(payload); err != nil {
		return err
	}

	s.play(sounds.TaskCreate)
	logger.Info("Service: задача добавлена",
		zap.Int("estimation_seconds", nt.EstimationSeconds),
		zap.Bool("deadline", nt.HasDeadline()),
	)
	return nil
}

// ConfirmMessage is the question shown before completing or deleting a task.
func (s *TaskService) ConfirmMessage(kind render.ConfirmKind, uuid string) (string, error) {
	t, ok := s.findTask(uuid)
	if !ok {
		return "", NewNotFound("задача", uuid)
	}
	switch kind {
	case render.ConfirmDelete:
		return "Do you really want to DELETE the task: " + t.Body + "?", nil
	case render.ConfirmComplete:
		return "Do you really want to report on the completion of the task: " + t.Body + "?", nil
	}
	return "Are you sure?", nil
}

func (s *TaskService) confirm(ctx context.Context, c Confirmer, kind render.ConfirmKind, uuid string) bool {
	if c == nil {
		return false
	}
	msg, err := s.ConfirmMessage(kind, uuid)
	if err != nil {
		msg = "Are you sure?"
	}
	return c.Confirm(ctx, kind, msg)
}

// Complete reports a task done after the user confirms. A declined
// confirmation returns false and no error.
func (s *TaskService) Complete(ctx context.Context, uuid string, c Confirmer) (bool, error) {
	if !s.confirm(ctx, c, render.ConfirmComplete, uuid) {
		logger.Debug("Service: завершение отменено", zap.String("task", uuid))
		return false, nil
	}

	payload, err := s.backend.CompleteTask(ctx, uuid)
	if err != nil {
		return false, newTransportError("completeTask", err)
	}
	s.forgetTimer(uuid)
	if err := s.renderTasks(payload); err != nil {
		return false, err
	}
	s.play(sounds.TaskComplete)

	if err := s.RefreshToday(ctx); err != nil {
		logger.Warn("Service: результаты дня не обновлены", zap.Error(err))
	}
	if err := s.RefreshGamification(ctx); err != nil {
		logger.Warn("Service: геймификация не обновлена", zap.Error(err))
	}
	return true, nil
}

func (s *TaskService) Remove(ctx context.Context, uuid string, c Confirmer) (bool, error) {
	if !s.confirm(ctx, c, render.ConfirmDelete, uuid) {
		logger.Debug("Service: удаление отменено", zap.String("task", uuid))
		return false, nil
	}

	payload, err := s.backend.RemoveTask(ctx, uuid)
	if err != nil {
		return false, newTransportError("removeTask", err)
	}
	s.forgetTimer(uuid)
	if err := s.renderTasks(payload); err != nil {
		return false, err
	}
	s.play(sounds.TaskDelete)
	return true, nil
}

// DragStart acknowledges that the user picked up a task for reordering.
func (s *TaskService) DragStart(uuid string) error {
	if _, ok := s.findTask(uuid); !ok {
		return NewNotFound("задача", uuid)
	}
	s.play(sounds.DragStart)
	return nil
}

// Reorder moves source to the position of destination. A failed request is
// recovered by reloading the full list instead of trusting local state.
func (s *TaskService) Reorder(ctx context.Context, source, destination string) error {
	if destination == "" || source == destination {
		return nil
	}

	payload, err := s.backend.RearrangeTasks(ctx, source, destination)
	if err != nil {
		logger.Warn("Service: перестановка не удалась, перезагрузка списка",
			zap.String("source", source),
			zap.String("destination", destination),
			zap.Error(err),
		)
		return s.Refresh(ctx)
	}

	if err := s.renderTasks(payload); err != nil {
		return err
	}
	s.play(sounds.Drop)
	return nil
}

func (s *TaskService) RefreshToday(ctx context.Context) error {
	payload, err := s.backend.GetTodayResults(ctx)
	if err != nil {
		return newTransportError("getTodayResults", err)
	}
	if _, err := s.renderer.TodayResults(payload, s.stamp()); err != nil {
		return fmt.Errorf("отрисовка результатов дня: %w", err)
	}
	return nil
}

// RefreshGamification re-reads the score. An unreachable backend shows the
// default level-1 panel. Newly qualified achievements are queued for display,
// each at most once per session.
func (s *TaskService) RefreshGamification(ctx context.Context) error {
	g := task.DefaultGamification()

	payload, fetchErr := s.backend.GetGamification(ctx)
	if fetchErr == nil {
		decoded, err := task.DecodeGamification(payload)
		if err != nil {
			fetchErr = err
		} else {
			g = decoded
		}
	}

	s.mu.Lock()
	if fetchErr == nil {
		s.gamification = g
		for _, a := range gamification.NewAchievements(g) {
			if !s.announced[a.ID] {
				s.announced[a.ID] = true
				s.achievements = append(s.achievements, a)
			}
		}
	}
	s.mu.Unlock()

	if err := s.renderer.Points(g, s.soundEnabled(), s.stamp()); err != nil {
		return fmt.Errorf("отрисовка очков: %w", err)
	}
	if fetchErr != nil {
		return newTransportError("getGamification", fetchErr)
	}
	return nil
}

// TakeAchievements returns and clears the queued achievement notifications.
func (s *TaskService) TakeAchievements() []gamification.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.achievements
	s.achievements = nil
	return out
}

func (s *TaskService) LoadBuildInfo(ctx context.Context) {
	var info task.BuildInfo

	payload, err := s.backend.Version(ctx)
	if err == nil {
		info, err = task.DecodeBuildInfo(payload)
	}
	if err != nil {
		logger.Warn("Service: версия сборки недоступна", zap.Error(err))
	}

	if err := s.renderer.Footer(info, s.stamp()); err != nil {
		logger.Error("Service: подвал не отрисован", err)
	}
}

// ToggleSound flips the persisted sound preference and repaints the panel.
func (s *TaskService) ToggleSound() (bool, error) {
	if s.sounds == nil {
		return false, nil
	}
	enabled, err := s.sounds.Toggle()
	if err != nil {
		return enabled, fmt.Errorf("переключение звука: %w", err)
	}

	s.mu.Lock()
	g := s.gamification
	s.mu.Unlock()

	if err := s.renderer.Points(g, enabled, s.stamp()); err != nil {
		return enabled, fmt.Errorf("отрисовка очков: %w", err)
	}
	return enabled, nil
}

// EditForm loads a task back into the add form.
func (s *TaskService) EditForm(uuid string) (render.Form, error) {
	t, ok := s.findTask(uuid)
	if !ok {
		return render.Form{}, NewNotFound("задача", uuid)
	}

	est := task.SplitCalendarDuration(t.DurationExecutionEstimatedSeconds)
	form := render.Form{
		Text:    t.Body,
		Days:    strconv.Itoa(est.Days),
		Hours:   strconv.Itoa(est.Hours),
		Minutes: strconv.Itoa(est.Minutes),
	}
	if t.HasDeadline() {
		form.Month = strconv.Itoa(int(t.TimeHardDeadline.Month()))
		form.Day = strconv.Itoa(t.TimeHardDeadline.Day())
	}
	return form, nil
}

func (s *TaskService) StartTimer(uuid string) error {
	if s.timer == nil {
		return NewBusinessError(CodeTimerIdle, "таймер не подключён", nil)
	}
	t, ok := s.findTask(uuid)
	if !ok {
		return NewNotFound("задача", uuid)
	}

	if err := s.timer.Start(uuid, t.DurationExecutionRealSeconds); err != nil {
		if errors.Is(err, timer.ErrTimerBusy) {
			return NewBusinessError(CodeTimerBusy, "таймер уже запущен для другой задачи", err,
				ToDetail("active", s.timer.Active()))
		}
		return fmt.Errorf("запуск таймера: %w", err)
	}

	s.play(sounds.TaskStart)
	return s.repaintSnapshot()
}

func (s *TaskService) StopTimer() error {
	if s.timer == nil {
		return NewBusinessError(CodeTimerIdle, "таймер не подключён", nil)
	}
	if _, _, err := s.timer.Stop(); err != nil {
		if errors.Is(err, timer.ErrTimerIdle) {
			return NewBusinessError(CodeTimerIdle, "таймер не запущен", err)
		}
		return fmt.Errorf("остановка таймера: %w", err)
	}
	return s.repaintSnapshot()
}

func (s *TaskService) ActiveTask() string {
	if s.timer == nil {
		return ""
	}
	return s.timer.Active()
}

func (s *TaskService) forgetTimer(uuid string) {
	if s.timer != nil && s.timer.Forget(uuid) {
		logger.Info("Service: таймер остановлен вместе с задачей", zap.String("task", uuid))
	}
}

// TickRealSeconds stores the accumulated seconds of the running task and
// repaints the list with the new value.
func (s *TaskService) TickRealSeconds(ctx context.Context, uuid string, seconds int) error {
	if err := s.backend.UpdateTaskExecutionRealSeconds(ctx, uuid, seconds); err != nil {
		return newTransportError("updateTaskExecutionRealSeconds", err)
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].UUID == uuid {
			s.tasks[i].DurationExecutionRealSeconds = seconds
		}
	}
	s.mu.Unlock()

	return s.repaintSnapshot()
}
