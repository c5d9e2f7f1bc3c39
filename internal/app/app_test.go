package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"doneUI/internal/app"
	"doneUI/internal/config"
	"doneUI/internal/textcodec"

	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	backend *httptest.Server
	app     *app.App
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	body := textcodec.Encode("Buy milk")
	s.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/getTasks":
			_, _ = io.WriteString(w, `[{"uuid":"t1","body":"`+body+`","order":1,"duration_execution_estimated_seconds":3600,"time_hard_dead_line":"9999-01-01T00:00:00Z"}]`)
		case "/api/getTodayResults":
			_, _ = io.WriteString(w, `[]`)
		case "/api/getGamification":
			_, _ = io.WriteString(w, `{"total_points":120,"current_streak":1,"completed_tasks":3,"level":1,"achievements":[]}`)
		case "/api/version":
			_, _ = io.WriteString(w, `{"buildDate":"2026.10.01"}`)
		default:
			http.NotFound(w, r)
		}
	}))

	cfg := config.Default()
	cfg.Backend.URL = s.backend.URL
	cfg.Logging.Development = false
	cfg.Server.Port = 0
	cfg.Server.Host = "127.0.0.1"
	cfg.Preferences.Path = filepath.Join(s.T().TempDir(), "prefs.json")

	a, err := app.New(cfg).Init(context.Background())
	s.Require().NoError(err)
	s.app = a
}

func (s *AppTestSuite) TearDownTest() {
	s.backend.Close()
}

func (s *AppTestSuite) get(path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	s.app.Handler().ServeHTTP(rr, req)
	return rr
}

func (s *AppTestSuite) TestServesPage() {
	s.Require().NoError(s.app.Service().Bootstrap(context.Background()))

	rr := s.get("/")

	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "Buy milk")
	s.Contains(rr.Body.String(), "2026.10.01")
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *AppTestSuite) TestFragmentAfterBootstrap() {
	s.Require().NoError(s.app.Service().Bootstrap(context.Background()))

	rr := s.get("/fragments/page_tasks_content")

	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `id="task_t1"`)
}

func (s *AppTestSuite) TestStaticAndMetrics() {
	s.Equal(http.StatusOK, s.get("/static/css/style.css").Code)

	js := s.get("/static/js/app.js")
	s.Equal(http.StatusOK, js.Code)
	s.Contains(js.Body.String(), "/tasks/reorder")

	_ = s.get("/health")
	metrics := s.get("/metrics")
	s.Equal(http.StatusOK, metrics.Code)
	s.Contains(metrics.Body.String(), "done_http_requests_total")
}

func (s *AppTestSuite) TestCORS() {
	allowed := s.get("/health", "Origin", "http://localhost:3002")
	s.Equal("http://localhost:3002", allowed.Header().Get("Access-Control-Allow-Origin"))

	foreign := s.get("/health", "Origin", "http://example.com")
	s.Empty(foreign.Header().Get("Access-Control-Allow-Origin"))
}

func (s *AppTestSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("Run не завершился после отмены контекста")
	}
}
