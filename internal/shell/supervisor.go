package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"doneUI/internal/logger"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

var ErrNotStarted = errors.New("server process not started")

// Supervisor owns the backend child process.
type Supervisor struct {
	Executable string
	WorkDir    string

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

func NewSupervisor(executable, workDir string) *Supervisor {
	return &Supervisor{
		Executable: executable,
		WorkDir:    workDir,
	}
}

// Start spawns `<Executable> -port <port>` in WorkDir with inherited stdio.
func (s *Supervisor) Start(port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return fmt.Errorf("сервер уже запущен (pid %d)", s.cmd.Process.Pid)
	}

	cmd := exec.Command(s.Executable, "-port", strconv.Itoa(port))
	cmd.Dir = s.WorkDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("запуск %s: %w", s.Executable, err)
	}

	s.cmd = cmd
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		err := cmd.Wait()
		close(done)
		logger.Info("Shell: процесс сервера завершён",
			zap.Int("pid", cmd.Process.Pid),
			zap.Error(err))
	}(s.done)

	logger.Info("Shell: сервер запущен",
		zap.String("executable", s.Executable),
		zap.String("dir", s.WorkDir),
		zap.Int("port", port),
		zap.Int("pid", cmd.Process.Pid))
	return nil
}

func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Done is closed when the child exits. It is nil before Start.
func (s *Supervisor) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Alive asks the OS whether the child is still running.
func (s *Supervisor) Alive(ctx context.Context) bool {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.mu.Unlock()
	if cmd == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
	}

	p, err := process.NewProcessWithContext(ctx, int32(cmd.Process.Pid))
	if err != nil {
		return false
	}
	running, err := p.IsRunningWithContext(ctx)
	return err == nil && running
}

// Watch checks Alive every interval and closes the returned channel once the
// child is gone. Cancelling ctx stops the watch without closing the channel.
func (s *Supervisor) Watch(ctx context.Context, interval time.Duration) <-chan struct{} {
	gone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !s.Alive(ctx) {
					if ctx.Err() != nil {
						return
					}
					logger.Warn("Shell: процесс сервера пропал", zap.Int("pid", s.Pid()))
					close(gone)
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return gone
}

// Stop kills the child and waits for it to exit.
func (s *Supervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.mu.Unlock()
	if cmd == nil {
		return ErrNotStarted
	}

	select {
	case <-done:
		return nil
	default:
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("остановка сервера: %w", err)
	}

	select {
	case <-done:
		logger.Info("Shell: сервер остановлен", zap.Int("pid", cmd.Process.Pid))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
