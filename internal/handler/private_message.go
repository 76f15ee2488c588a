package handler

import (
	"context"
	"strings"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/metrics"
)

func (h *Handler) handlePrivateMessage(c tb.Context) error {
	start := time.Now()
	defer func() {
		metrics.ObserveUpdateProcessing("private_message", time.Since(start).Seconds(), nil)
	}()

	ctx, span := h.tracer.Start(context.Background(), "handlePrivateMessage")
	defer span.End()

	if strings.HasPrefix(c.Message().Text, "/start") {
		h.reply(c, messages.MsgStart)
		return nil
	}
	if h.handleCommand(ctx, c) {
		return nil
	}

	h.logger.Debug("Unhandled private message", "user_id", c.Sender().ID)
	return nil
}
