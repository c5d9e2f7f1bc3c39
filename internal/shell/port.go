// Package shell runs the Done backend next to the UI on a desktop: it finds
// a free port, spawns the server, waits until it answers and opens the page.
package shell

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"doneUI/internal/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	DefaultStartPort     = 3001
	DefaultReadyAttempts = 30
	DefaultReadyInterval = 100 * time.Millisecond

	dialTimeout = 200 * time.Millisecond
)

var ErrServerNotReady = errors.New("server failed to start")

// FindAvailablePort returns the first port starting at start that can be
// bound on host.
func FindAvailablePort(host string, start int) (int, error) {
	if start <= 0 {
		start = DefaultStartPort
	}
	for port := start; port <= 65535; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("нет свободного порта начиная с %d", start)
}

// IsAlreadyRunning reports whether something already accepts connections on addr.
func IsAlreadyRunning(ctx context.Context, addr string) bool {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// WaitForServer polls addr until a TCP connection succeeds. It gives up after
// attempts tries spaced by interval.
func WaitForServer(ctx context.Context, addr string, attempts int, interval time.Duration) error {
	if attempts <= 0 {
		attempts = DefaultReadyAttempts
	}
	if interval <= 0 {
		interval = DefaultReadyInterval
	}

	tries := 0
	operation := func() error {
		tries++
		if IsAlreadyRunning(ctx, addr) {
			return nil
		}
		return fmt.Errorf("%s не отвечает", addr)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(attempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.Warn("Shell: сервер не поднялся",
			zap.String("addr", addr),
			zap.Int("attempts", tries),
			zap.Error(err))
		return fmt.Errorf("%w: %s after %d attempts", ErrServerNotReady, addr, tries)
	}

	logger.Info("Shell: сервер готов", zap.String("addr", addr), zap.Int("attempts", tries))
	return nil
}
