package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"doneUI/internal/client"
	"doneUI/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	RequestID   string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	status   map[string]int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
	})
	code, ok := f.status[r.URL.Path]
	f.mu.Unlock()

	if ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("boom"))
		return
	}
	_, _ = w.Write([]byte(`[]`))
}

func newBackend(t *testing.T) (*fakeBackend, *client.Client) {
	t.Helper()
	fb := &fakeBackend{status: map[string]int{}}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, client.New(srv.URL + "/")
}

func TestPayloads(t *testing.T) {
	assert.Equal(t, "Ym9keQ$;3600$;0$;0$;0", client.AddPayload("Ym9keQ", 3600, "0", "0", "0"))
	assert.Equal(t, "u-1$;42", client.UpdateRealSecondsPayload("u-1", 42))
	assert.Equal(t, "src,dst", client.RearrangePayload("src", "dst"))
}

func TestClient_Requests(t *testing.T) {
	fb, c := newBackend(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want recorded
	}{
		{
			name: "get tasks",
			call: func() error { _, err := c.GetTasks(ctx); return err },
			want: recorded{Method: http.MethodGet, Path: "/api/getTasks", ContentType: "application/json"},
		},
		{
			name: "add",
			call: func() error { _, err := c.AddTask(ctx, client.AddPayload("eA", 60, "1", "2", "2027")); return err },
			want: recorded{Method: http.MethodPost, Path: "/api/addTask", Body: "eA$;60$;1$;2$;2027", ContentType: "application/json"},
		},
		{
			name: "complete",
			call: func() error { _, err := c.CompleteTask(ctx, "u-1"); return err },
			want: recorded{Method: http.MethodPost, Path: "/api/completeTask", Body: "u-1", ContentType: "text/plain"},
		},
		{
			name: "remove",
			call: func() error { _, err := c.RemoveTask(ctx, "u-2"); return err },
			want: recorded{Method: http.MethodPost, Path: "/api/removeTask", Body: "u-2", ContentType: "text/plain"},
		},
		{
			name: "rearrange",
			call: func() error { _, err := c.RearrangeTasks(ctx, "a", "b"); return err },
			want: recorded{Method: http.MethodPost, Path: "/api/rearrangeTasks", Body: "a,b", ContentType: "text/plain"},
		},
		{
			name: "update real seconds",
			call: func() error { return c.UpdateTaskExecutionRealSeconds(ctx, "u-3", 61) },
			want: recorded{Method: http.MethodPost, Path: "/api/updateTaskExecutionRealSeconds", Body: "u-3$;61", ContentType: "application/json"},
		},
		{
			name: "version",
			call: func() error { _, err := c.Version(ctx); return err },
			want: recorded{Method: http.MethodGet, Path: "/api/version", ContentType: "application/json"},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			require.Len(t, fb.requests, i+1)
			assert.Equal(t, tt.want, fb.requests[i])
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	fb, c := newBackend(t)
	fb.status["/api/rearrangeTasks"] = http.StatusInternalServerError

	_, err := c.RearrangeTasks(context.Background(), "a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrTransport)

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Body)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).GetTasks(context.Background())
	assert.ErrorIs(t, err, client.ErrTransport)
}

func TestClient_ForwardsRequestID(t *testing.T) {
	fb, c := newBackend(t)

	ctx := context.WithValue(context.Background(), middleware.RequestIdKey, "req-7")
	_, err := c.GetGamification(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-7", fb.requests[0].RequestID)
}
