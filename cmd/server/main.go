package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mkrol/bike-hunter/internal/api"
	"github.com/mkrol/bike-hunter/internal/config"
	"github.com/mkrol/bike-hunter/internal/core"
	"github.com/mkrol/bike-hunter/internal/httpx"
	"github.com/mkrol/bike-hunter/internal/notify"
	"github.com/mkrol/bike-hunter/internal/search"
	"github.com/mkrol/bike-hunter/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	profile, err := cfg.Profile()
	if err != nil {
		slog.Error("failed to load search profile", "error", err)
		os.Exit(1)
	}

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open result store", "error", err)
		os.Exit(1)
	}

	fetcher := httpx.NewFetcher(cfg.UserAgent, 2*time.Second)
	pipeline, err := search.NewPipeline(fetcher, cfg.BaseURL)
	if err != nil {
		slog.Error("failed to build search pipeline", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewConsole(os.Stdout)
	service := core.NewSearchService(pipeline, fileStore, notifier)

	ctx := context.Background()

	scheduler := core.NewScheduler(service, profile, cfg.SearchIntervalHours, 30)
	if err := scheduler.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	srv := api.NewServer(fileStore, service, profile)

	slog.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
