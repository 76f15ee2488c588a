package handler

import (
	"log/slog"

	tb "gopkg.in/telebot.v3"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/config"
	"github.com/mdnahidul337/report-support/internal/notify"
	"github.com/mdnahidul337/report-support/internal/service"
)

type Handler struct {
	logger   *slog.Logger
	svc      service.Service
	bot      *tb.Bot
	api      chat.API
	notifier *notify.Dispatcher
	cfg      *config.Config
	tracer   trace.Tracer
}

func NewHandler(logger *slog.Logger, svc service.Service, bot *tb.Bot, api chat.API, notifier *notify.Dispatcher, cfg *config.Config) *Handler {
	return &Handler{
		logger:   logger,
		svc:      svc,
		bot:      bot,
		api:      api,
		notifier: notifier,
		cfg:      cfg,
		tracer:   otel.Tracer("handler"),
	}
}

// Register wires every inbound event kind: text messages and the tagged
// callback controls.
func (h *Handler) Register() {
	h.bot.Handle(tb.OnText, h.onText)
	h.bot.Handle(&tb.Btn{Unique: chat.BtnAcceptReport}, func(c tb.Context) error {
		return h.onDecision(c, service.DecisionAccept)
	})
	h.bot.Handle(&tb.Btn{Unique: chat.BtnRejectReport}, func(c tb.Context) error {
		return h.onDecision(c, service.DecisionReject)
	})
	h.bot.Handle(&tb.Btn{Unique: chat.BtnDeleteLink}, h.onDeleteLink)
}

func (h *Handler) onText(c tb.Context) error {
	if c.Chat() == nil || c.Sender() == nil {
		return nil
	}
	if c.Chat().Type == tb.ChatPrivate {
		return h.handlePrivateMessage(c)
	}
	return h.handleGroupMessage(c)
}
