package shell

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

// BackendOptions says where the Done server is expected and how to start it.
type BackendOptions struct {
	URL           string
	Executable    string
	WorkDir       string
	StartPort     int
	ReadyAttempts int
	ReadyInterval time.Duration
}

// EnsureBackend reuses a server already answering at opts.URL or spawns one
// on the first free port from opts.StartPort. It returns the URL the UI must
// talk to and the supervisor of the spawned child (nil when reused).
func EnsureBackend(ctx context.Context, opts BackendOptions) (string, *Supervisor, error) {
	backend, err := url.Parse(opts.URL)
	if err != nil {
		return "", nil, fmt.Errorf("backend.url: %w", err)
	}
	if IsAlreadyRunning(ctx, backend.Host) {
		logger.Info("Shell: сервер Done уже запущен", zap.String("addr", backend.Host))
		return opts.URL, nil, nil
	}

	host := backend.Hostname()
	if host == "" {
		host = "localhost"
	}
	port, err := FindAvailablePort(host, opts.StartPort)
	if err != nil {
		return "", nil, err
	}

	supervisor := NewSupervisor(opts.Executable, opts.WorkDir)
	if err := supervisor.Start(port); err != nil {
		return "", nil, err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	if err := WaitForServer(ctx, addr, opts.ReadyAttempts, opts.ReadyInterval); err != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = supervisor.Stop(stopCtx)
		return "", nil, err
	}

	logger.Info("Shell: сервер Done поднят", zap.String("addr", addr), zap.Int("pid", supervisor.Pid()))
	return "http://" + addr, supervisor, nil
}
