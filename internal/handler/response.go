package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/enforcer"
	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/policy"
	"github.com/mdnahidul337/report-support/internal/repository"
	"github.com/mdnahidul337/report-support/internal/service"
	"github.com/mdnahidul337/report-support/internal/utils"
)

func (h *Handler) reply(c tb.Context, text string) {
	if err := c.Send(text, &tb.SendOptions{ParseMode: tb.ModeMarkdown}); err != nil {
		h.logger.Error("Failed to send reply", "chat_id", c.Chat().ID, "error", err)
	}
}

// sendTemporary posts a transient group notice and queues it for deletion
// after one minute to keep the group clean.
func (h *Handler) sendTemporary(ctx context.Context, chatID int64, text string) {
	ref, err := h.api.Send(ctx, chatID, chat.Outgoing{Text: text})
	if err != nil {
		h.logger.Error("Failed to send temporary message", "chat_id", chatID, "error", err)
		return
	}
	if err := h.svc.ScheduleDeletion(ctx, ref, 1*time.Minute); err != nil {
		h.logger.Error("Failed to schedule deletion", "error", err)
	}
}

func (h *Handler) sendGroup(ctx context.Context, chatID int64, text string) {
	if _, err := h.api.Send(ctx, chatID, chat.Outgoing{Text: text}); err != nil {
		h.logger.Error("Failed to send group message", "chat_id", chatID, "error", err)
	}
}

// editAdminPrompts rewrites every admin notification of a resolved report in
// place. This is a UI update only; it cannot re-trigger the decision.
func (h *Handler) editAdminPrompts(ctx context.Context, rep *repository.Report) {
	resolved := service.AdminPromptResolved(rep)
	for _, ref := range rep.AdminMessages {
		if err := h.api.Edit(ctx, ref, resolved); err != nil {
			h.logger.Warn("Failed to edit admin prompt", "chat_id", ref.ChatID, "error", err)
		}
	}
}

// notifyReporter tells the reporter the outcome privately. If the reporter
// never started a private chat with the bot the send fails; fall back to a
// transient group notice instead of raising.
func (h *Handler) notifyReporter(ctx context.Context, rep *repository.Report) {
	text := fmt.Sprintf(messages.MsgReporterAccepted, rep.GroupTitle)
	if rep.Status == repository.ReportRejected {
		text = fmt.Sprintf(messages.MsgReporterRejected, rep.GroupTitle)
	}

	if _, err := h.api.Send(ctx, rep.ReporterID, chat.Outgoing{Text: text}); err != nil {
		h.logger.Info("Private notice failed, falling back to group", "reporter", rep.ReporterID, "error", err)
		h.sendTemporary(ctx, rep.GroupID, chat.Mention(rep.ReporterName, rep.ReporterID)+": "+text)
	}
}

// applyOrder executes one restriction and surfaces the outcome: a group
// notice on success, an admin alert on permission or transport failure.
func (h *Handler) applyOrder(ctx context.Context, order policy.Order, reason string) {
	_, err := h.svc.EnforceOrder(ctx, order)
	if err != nil {
		mention := chat.Mention(order.UserName, order.UserID)
		var text string
		if errors.Is(err, enforcer.ErrInsufficientPrivilege) {
			text = fmt.Sprintf(messages.MsgBotNotAdmin, groupLabel(order.GroupID), mention)
		} else {
			h.logger.Error("Failed to apply restriction", "chat_id", order.GroupID, "user_id", order.UserID, "error", err)
			text = fmt.Sprintf(messages.MsgRestrictFailed, mention, groupLabel(order.GroupID), err)
		}
		h.notifier.Broadcast(ctx, h.cfg.AdminUserIDs, chat.Outgoing{Text: text})
		return
	}

	notice := fmt.Sprintf(messages.MsgUserMuted,
		chat.Mention(order.UserName, order.UserID),
		utils.HumanDuration(order.Duration),
		reason,
	)
	h.sendGroup(ctx, order.GroupID, notice)
}

func orderReason(reason policy.Reason) string {
	switch reason {
	case policy.FalseReportThreshold:
		return messages.MsgReasonFalseReports
	case policy.SpamThreshold:
		return messages.MsgReasonSpamRestriction
	case policy.AcceptedReport:
		return messages.MsgReasonAcceptedReport
	}
	return string(reason)
}

func groupLabel(chatID int64) string {
	return fmt.Sprintf("chat %d", chatID)
}
