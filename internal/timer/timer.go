// Package timer accumulates real execution time for at most one task at a time.
package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrTimerBusy = errors.New("another task timer is already running")
	ErrTimerIdle = errors.New("no task timer is running")
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// TickFunc reports the accumulated seconds of the running task.
type TickFunc func(ctx context.Context, uuid string, seconds int) error

type Timer struct {
	mu       sync.Mutex
	state    State
	taskUUID string
	seconds  int
	interval time.Duration
	tick     TickFunc
	base     context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(tick TickFunc, interval *time.Duration) *Timer {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = time.Second
	} else {
		intervalToSet = *interval
	}

	return &Timer{
		interval: intervalToSet,
		tick:     tick,
		base:     context.Background(),
	}
}

// Run binds running timers to ctx and stops the active one when ctx ends.
func (t *Timer) Run(ctx context.Context) error {
	t.mu.Lock()
	t.base = ctx
	t.mu.Unlock()

	<-ctx.Done()
	if _, _, err := t.Stop(); err == nil {
		logger.Info("Timer: остановлен при завершении")
	}
	return nil
}

// Start moves Idle -> Running for uuid, counting on from startSeconds.
func (t *Timer) Start(uuid string, startSeconds int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Running {
		return ErrTimerBusy
	}

	ctx, cancel := context.WithCancel(t.base)
	t.state = Running
	t.taskUUID = uuid
	t.seconds = max(startSeconds, 0)
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.loop(ctx, uuid, t.done)

	logger.Info("Timer: запущен", zap.String("task", uuid), zap.Int("seconds", t.seconds))
	return nil
}

// Stop moves Running -> Idle and returns the task and its accumulated seconds.
func (t *Timer) Stop() (string, int, error) {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return "", 0, ErrTimerIdle
	}
	uuid, cancel, done := t.taskUUID, t.cancel, t.done
	t.mu.Unlock()

	cancel()
	<-done

	t.mu.Lock()
	defer t.mu.Unlock()

	seconds := t.seconds
	t.state = Idle
	t.taskUUID = ""
	t.seconds = 0
	t.cancel = nil
	t.done = nil

	logger.Info("Timer: остановлен", zap.String("task", uuid), zap.Int("seconds", seconds))
	return uuid, seconds, nil
}

// Forget stops the timer if it runs for uuid. Used when the task leaves the list.
func (t *Timer) Forget(uuid string) bool {
	if t.Active() != uuid || uuid == "" {
		return false
	}
	_, _, err := t.Stop()
	return err == nil
}

func (t *Timer) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.taskUUID
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

func (t *Timer) loop(ctx context.Context, uuid string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			t.seconds++
			seconds := t.seconds
			t.mu.Unlock()

			if err := t.tick(ctx, uuid, seconds); err != nil && ctx.Err() == nil {
				logger.Warn("Timer: ошибка обновления времени", zap.String("task", uuid), zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
