// Package client talks to the task storage backend over its /api endpoints.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"doneUI/internal/logger"
	"doneUI/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var ErrTransport = errors.New("backend transport error")

// StatusError is a non-2xx backend response.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: статус %d", e.Endpoint, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

const (
	EndpointGetTasks          = "/api/getTasks"
	EndpointGetTodayResults   = "/api/getTodayResults"
	EndpointGetGamification   = "/api/getGamification"
	EndpointVersion           = "/api/version"
	EndpointAddTask           = "/api/addTask"
	EndpointCompleteTask      = "/api/completeTask"
	EndpointRemoveTask        = "/api/removeTask"
	EndpointRearrangeTasks    = "/api/rearrangeTasks"
	EndpointUpdateRealSeconds = "/api/updateTaskExecutionRealSeconds"
)

var backendRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "done_backend_requests_total",
		Help: "Backend API calls by endpoint and outcome",
	},
	[]string{"endpoint", "outcome"},
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the backend at baseURL. Requests carry no timeout
// of their own; callers bound them through the context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType, body string) ([]byte, error) {
	var reader io.Reader
	if method == http.MethodPost {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		backendRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, endpoint, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id := middleware.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		backendRequests.WithLabelValues(endpoint, "error").Inc()
		logger.Warn("Client: бэкенд недоступен", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		backendRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%w: чтение ответа %s: %v", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		backendRequests.WithLabelValues(endpoint, "status").Inc()
		logger.Warn("Client: неуспешный ответ",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: string(data)}
	}

	backendRequests.WithLabelValues(endpoint, "ok").Inc()
	logger.Debug("Client: ответ получен", zap.String("endpoint", endpoint), zap.Int("bytes", len(data)))
	return data, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, "application/json", "")
}

func (c *Client) post(ctx context.Context, endpoint, contentType, body string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, contentType, body)
}

func (c *Client) GetTasks(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointGetTasks)
}

func (c *Client) GetTodayResults(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointGetTodayResults)
}

func (c *Client) GetGamification(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointGetGamification)
}

func (c *Client) Version(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointVersion)
}

// AddTask sends an already joined add payload (see AddPayload).
func (c *Client) AddTask(ctx context.Context, payload string) ([]byte, error) {
	return c.post(ctx, EndpointAddTask, "application/json", payload)
}

func (c *Client) CompleteTask(ctx context.Context, uuid string) ([]byte, error) {
	return c.post(ctx, EndpointCompleteTask, "text/plain", uuid)
}

func (c *Client) RemoveTask(ctx context.Context, uuid string) ([]byte, error) {
	return c.post(ctx, EndpointRemoveTask, "text/plain", uuid)
}

func (c *Client) RearrangeTasks(ctx context.Context, source, destination string) ([]byte, error) {
	return c.post(ctx, EndpointRearrangeTasks, "text/plain", RearrangePayload(source, destination))
}

func (c *Client) UpdateTaskExecutionRealSeconds(ctx context.Context, uuid string, seconds int) error {
	_, err := c.post(ctx, EndpointUpdateRealSeconds, "application/json", UpdateRealSecondsPayload(uuid, seconds))
	return err
}
