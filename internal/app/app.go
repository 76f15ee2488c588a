package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/config"
	"github.com/mdnahidul337/report-support/internal/enforcer"
	"github.com/mdnahidul337/report-support/internal/handler"
	"github.com/mdnahidul337/report-support/internal/metrics"
	"github.com/mdnahidul337/report-support/internal/notify"
	"github.com/mdnahidul337/report-support/internal/policy"
	"github.com/mdnahidul337/report-support/internal/repository"
	"github.com/mdnahidul337/report-support/internal/service"
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger
	bot    *tb.Bot
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	bot, err := tb.NewBot(tb.Settings{
		Token:  cfg.BotToken,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
		Client: &http.Client{Timeout: cfg.APITimeout},
		OnError: func(err error, _ tb.Context) {
			logger.Error("Bot handler error", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		bot:    bot,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting report bot", "username", a.bot.Me.Username, "id", a.bot.Me.ID)

	store, err := repository.OpenStore(a.logger, a.cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}

	reportRepo := repository.NewReportRepository(store)
	counterRepo := repository.NewCounterRepository(store)
	linkRepo := repository.NewLinkRepository(store)
	tempMessageRepo := repository.NewTemporaryMessageRepository(store)

	api := chat.NewTelebotAPI(a.bot)
	notifier := notify.NewDispatcher(a.logger, api)
	enf := enforcer.New(a.logger, api)
	pol := policy.FromConfig(a.cfg)

	svc := service.NewModerationService(a.logger, reportRepo, counterRepo, linkRepo, tempMessageRepo, pol, notifier, enf, api, a.cfg)
	svc.StartCleanupTask(ctx)
	svc.StartMetricsUpdater(ctx)

	h := handler.NewHandler(a.logger, svc, a.bot, api, notifier, a.cfg)
	h.Register()

	metricsSrv := metrics.NewServer(a.logger, a.cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		a.logger.Info("Shutting down...")
		a.bot.Stop()
	}()

	a.logger.Info("Starting long polling")
	a.bot.Start()
	return nil
}
