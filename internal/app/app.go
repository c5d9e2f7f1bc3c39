package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"doneUI/internal/client"
	"doneUI/internal/config"
	"doneUI/internal/handlers"
	"doneUI/internal/logger"
	"doneUI/internal/middleware"
	"doneUI/internal/modules"
	"doneUI/internal/render"
	"doneUI/internal/service"
	"doneUI/internal/sounds"
	"doneUI/internal/timer"
	"doneUI/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Имена шаблонов, загрузку которых считаем в метриках.
var templateNames = []string{"task", "forecast", "today", "points", "achievement", "footer", "confirm"}

var templatesLoaded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "done_templates_loaded_total",
		Help: "Template loads from the embedded assets (cache misses)",
	},
	[]string{"name"},
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	cache     *modules.Cache
	bus       *modules.Bus
	renderer  *render.Renderer
	service   *service.TaskService
	timer     *timer.Timer
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	a.cache = modules.NewCache(&a.config.Modules.CacheTTL)
	a.bus = modules.NewBus()
	a.watchTemplates()
	loader := modules.NewLoader(web.FS(), web.TemplatesRoot, a.cache, a.bus)

	prefs, err := sounds.LoadPreferences(a.config.Preferences.Path)
	if err != nil {
		return nil, fmt.Errorf("настройки звука: %w", err)
	}
	player := sounds.New(prefs, sounds.LogPlayer{})

	backend := client.New(a.config.Backend.URL)

	var svc *service.TaskService
	a.timer = timer.New(func(ctx context.Context, uuid string, seconds int) error {
		return svc.TickRealSeconds(ctx, uuid, seconds)
	}, &a.config.Timer.TickInterval)

	a.renderer = render.NewRenderer(render.NewPageDocument(), loader,
		render.WithActiveTask(a.timer.Active),
		render.WithPage(web.FS(), "index.html"),
	)

	svc = service.NewTaskService(backend, a.renderer, service.WithSounds(player))
	svc.AttachTimer(a.timer)
	a.service = svc

	a.router = a.routes(handlers.NewTaskHandler(svc, a.renderer))
	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Приложение инициализировано",
		zap.String("addr", a.server.Addr),
		zap.String("backend", backend.BaseURL()),
		zap.Bool("sound", prefs.Enabled()))
	return a, nil
}

func (a *App) routes(h handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Content-Stamp"},
		MaxAge:         300,
	}))

	h.Register(r)

	r.Handle("/metrics", middleware.MetricsHandler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	return r
}

// watchTemplates counts template loads announced on the bus.
func (a *App) watchTemplates() {
	for _, name := range templateNames {
		unsubscribe := a.bus.Subscribe(modules.ThemeItemLoaded, "", name, func(msg modules.Message) {
			templatesLoaded.WithLabelValues(msg.Destination).Inc()
		})
		a.shutdowns = append(a.shutdowns, unsubscribe)
	}
}

func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Service() *service.TaskService {
	return a.service
}

// Run loads the initial state, then serves until ctx is cancelled. The
// timer and the template cache janitor run alongside the server.
func (a *App) Run(ctx context.Context) error {
	if err := a.service.Bootstrap(ctx); err != nil {
		logger.Warn("Начальная загрузка не удалась, страница покажет предупреждение", zap.Error(err))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.timer.Run(ctx)
	})
	g.Go(func() error {
		return a.cache.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Остановка HTTP сервера...")
		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
