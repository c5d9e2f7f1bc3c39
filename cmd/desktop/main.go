package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doneUI/internal/app"
	"doneUI/internal/config"
	"doneUI/internal/logger"
	"doneUI/internal/shell"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const watchInterval = 2 * time.Second

func main() {
	configPath := pflag.StringP("config", "c", "config.yml", "путь к файлу конфигурации")
	server := pflag.StringP("server", "s", "", "исполняемый файл сервера Done (перекрывает shell.server_executable)")
	workDir := pflag.StringP("workdir", "w", "", "рабочий каталог сервера (перекрывает shell.work_dir)")
	noBrowser := pflag.Bool("no-browser", false, "не открывать браузер")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Shell.ServerExecutable = *server
	}
	if *workDir != "" {
		cfg.Shell.WorkDir = *workDir
	}
	if *noBrowser {
		cfg.Shell.OpenBrowser = false
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		fmt.Fprintln(os.Stderr, "логгер:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("Shell: завершение с ошибкой", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	backendURL, supervisor, err := shell.EnsureBackend(ctx, shell.BackendOptions{
		URL:           cfg.Backend.URL,
		Executable:    cfg.Shell.ServerExecutable,
		WorkDir:       cfg.Shell.WorkDir,
		StartPort:     cfg.Shell.StartPort,
		ReadyAttempts: cfg.Shell.ReadyAttempts,
		ReadyInterval: cfg.Shell.ReadyInterval,
	})
	if err != nil {
		return err
	}
	cfg.Backend.URL = backendURL
	if supervisor != nil {
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := supervisor.Stop(stopCtx); err != nil {
				logger.Warn("Shell: сервер не остановлен", zap.Error(err))
			}
		}()
	}

	uiPort, err := shell.FindAvailablePort(cfg.Server.Host, cfg.Server.Port)
	if err != nil {
		return err
	}
	cfg.Server.Port = uiPort

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		return fmt.Errorf("инициализация: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if supervisor != nil {
		gone := supervisor.Watch(ctx, watchInterval)
		go func() {
			select {
			case <-supervisor.Done():
			case <-gone:
			case <-ctx.Done():
				return
			}
			logger.Warn("Shell: сервер Done завершился, закрываем UI")
			cancel()
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()

	if cfg.Shell.OpenBrowser {
		go func() {
			if err := shell.WaitForServer(ctx, cfg.GetServerAddr(), cfg.Shell.ReadyAttempts, cfg.Shell.ReadyInterval); err != nil {
				return
			}
			if err := shell.OpenBrowser(cfg.GetServerURL()); err != nil {
				logger.Warn("Shell: откройте страницу вручную",
					zap.String("url", cfg.GetServerURL()),
					zap.Error(err))
			}
		}()
	}

	return <-errCh
}
