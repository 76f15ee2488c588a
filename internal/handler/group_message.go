package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tb "gopkg.in/telebot.v3"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/metrics"
	"github.com/mdnahidul337/report-support/internal/pipeline"
	"github.com/mdnahidul337/report-support/internal/policy"
	"github.com/mdnahidul337/report-support/internal/service"
)

func (h *Handler) handleGroupMessage(c tb.Context) error {
	start := time.Now()
	var handleErr error
	defer func() {
		metrics.ObserveUpdateProcessing("group_message", time.Since(start).Seconds(), handleErr)
	}()

	ctx, span := h.tracer.Start(context.Background(), "handleGroupMessage")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("chat_id", c.Chat().ID),
		attribute.Int64("user_id", c.Sender().ID),
	)

	if h.handleCommand(ctx, c) {
		return nil
	}

	m := c.Message()
	payload := pipeline.Payload{
		ChatID:     c.Chat().ID,
		SenderID:   c.Sender().ID,
		SenderName: senderName(c.Sender()),
		MessageID:  strconv.Itoa(m.ID),
		Text:       m.Text,
	}

	res, err := h.svc.ObserveGroupMessage(ctx, payload)
	if err != nil {
		handleErr = err
		h.logger.Error("Failed to observe message", "error", err)
	}
	if res != nil && !res.IsAllowed {
		h.logger.Info("Message blocked", "reason", res.Reason, "filter", res.FilterName)
		h.handleSpamVerdict(c, res)
		return nil
	}

	if h.isReportTrigger(m) {
		h.handleReportTrigger(ctx, c)
	}
	return nil
}

// isReportTrigger matches a flag-style message: a reply carrying the
// configured trigger token.
func (h *Handler) isReportTrigger(m *tb.Message) bool {
	return m.ReplyTo != nil &&
		strings.Contains(strings.ToLower(m.Text), strings.ToLower(h.cfg.ReportTrigger))
}

func (h *Handler) handleReportTrigger(ctx context.Context, c tb.Context) {
	m := c.Message()
	reported := m.ReplyTo.Sender
	if reported == nil {
		return
	}

	intake := service.ReportIntake{
		GroupID:      c.Chat().ID,
		GroupTitle:   c.Chat().Title,
		ReporterID:   c.Sender().ID,
		ReporterName: senderName(c.Sender()),
		ReportedID:   reported.ID,
		ReportedName: senderName(reported),
		Message: chat.MessageRef{
			ChatID:    c.Chat().ID,
			MessageID: strconv.Itoa(m.ReplyTo.ID),
		},
		Excerpt: excerpt(m.ReplyTo.Text),
	}

	rep, err := h.svc.SubmitReport(ctx, intake)
	if err != nil {
		if errors.Is(err, service.ErrIneligibleReport) {
			h.logger.Debug("Report intake ignored", "chat_id", intake.GroupID, "reporter", intake.ReporterID)
		} else {
			h.logger.Error("Failed to submit report", "error", err)
		}
		return
	}

	h.logger.Info("Report created", "report_id", rep.ID, "chat_id", rep.GroupID)
	h.sendTemporary(ctx, c.Chat().ID, messages.MsgReportAck)
}

// handleSpamVerdict converts a disallowing filter result into a mute plus
// cleanup. External calls run off the handler goroutine.
func (h *Handler) handleSpamVerdict(c tb.Context, res *pipeline.Result) {
	chatID := c.Chat().ID
	sender := c.Sender()
	msg := c.Message()

	if res.ShouldMute {
		order := policy.Order{
			GroupID:  chatID,
			UserID:   sender.ID,
			UserName: senderName(sender),
			Duration: res.MuteDuration,
			Reason:   policy.SpamThreshold,
		}
		go h.applyOrder(context.Background(), order, messages.MsgReasonSpamRestriction)
	}
	if res.ShouldDelete {
		go func() {
			if err := h.bot.Delete(msg); err != nil {
				h.logger.Error("Failed to delete message", "message_id", msg.ID, "error", err)
				return
			}
			metrics.IncDeletedMessages(res.FilterName)
		}()
	}
}

func senderName(u *tb.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

func excerpt(text string) string {
	const max = 200
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return string(runes)
}
