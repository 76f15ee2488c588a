package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mdnahidul337/report-support/internal/app"
	"github.com/mdnahidul337/report-support/internal/config"
	"github.com/mdnahidul337/report-support/pkg/telemetry"
)

func main() {

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	if cfg.EnableTelemetry {
		shutdown, err := telemetry.InitTracer("report-support-bot", os.Stderr)
		if err != nil {
			logger.Error("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("Failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Error("Failed to create app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("App exited with error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
