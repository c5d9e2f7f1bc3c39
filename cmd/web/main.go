package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"doneUI/internal/app"
	"doneUI/internal/config"
	"doneUI/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yml", "путь к файлу конфигурации")
	port := pflag.IntP("port", "p", 0, "порт UI (перекрывает server.port)")
	backend := pflag.StringP("backend", "b", "", "адрес сервера Done (перекрывает backend.url)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *backend != "" {
		cfg.Backend.URL = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "инициализация:", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("Сервер завершился с ошибкой", err)
		logger.Sync()
		os.Exit(1)
	}
}
