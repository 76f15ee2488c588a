package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	tb "gopkg.in/telebot.v3"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/metrics"
	"github.com/mdnahidul337/report-support/internal/repository"
	"github.com/mdnahidul337/report-support/internal/service"
)

// onDecision handles the Accept/Reject controls on an admin prompt. The
// terminal transition happens in the service; everything after it (edits,
// notices, the restriction itself) is an external effect and runs off the
// callback goroutine.
func (h *Handler) onDecision(c tb.Context, decision service.Decision) error {
	start := time.Now()
	var handleErr error
	defer func() {
		metrics.ObserveUpdateProcessing("decision_callback", time.Since(start).Seconds(), handleErr)
	}()

	ctx, span := h.tracer.Start(context.Background(), "onDecision")
	defer span.End()

	adminID := c.Sender().ID
	reportID := c.Data()
	span.SetAttributes(
		attribute.String("report_id", reportID),
		attribute.String("decision", string(decision)),
		attribute.Int64("admin_id", adminID),
	)

	if !h.cfg.IsAdmin(adminID) {
		return c.Respond(&tb.CallbackResponse{Text: messages.MsgNotAllowed})
	}

	res, err := h.svc.ResolveReport(ctx, reportID, decision, adminID)
	if err != nil {
		handleErr = err
		switch {
		case errors.Is(err, repository.ErrAlreadyResolved):
			return c.Respond(&tb.CallbackResponse{Text: messages.MsgAlreadyResolved})
		case errors.Is(err, repository.ErrReportNotFound):
			return c.Respond(&tb.CallbackResponse{Text: messages.MsgReportNotFound})
		default:
			h.logger.Error("Failed to resolve report", "report_id", reportID, "error", err)
			return c.Respond(&tb.CallbackResponse{Text: messages.MsgDecisionFailed})
		}
	}

	h.logger.Info("Report resolved",
		"report_id", reportID,
		"decision", string(decision),
		"admin_id", adminID,
		"false_reports", res.FalseReports,
	)

	go h.editAdminPrompts(context.Background(), res.Report)
	go h.notifyReporter(context.Background(), res.Report)
	if res.Order != nil {
		go h.applyOrder(context.Background(), *res.Order, orderReason(res.Order.Reason))
	}

	return c.Respond(&tb.CallbackResponse{Text: string(res.Report.Status)})
}

func (h *Handler) onDeleteLink(c tb.Context) error {
	if !h.cfg.IsAdmin(c.Sender().ID) {
		return c.Respond(&tb.CallbackResponse{Text: messages.MsgNotAllowed})
	}
	number, err := strconv.Atoi(c.Data())
	if err != nil {
		return c.Respond(&tb.CallbackResponse{})
	}

	ctx, span := h.tracer.Start(context.Background(), "onDeleteLink")
	defer span.End()

	h.deleteLink(ctx, c, number)
	return c.Respond(&tb.CallbackResponse{})
}
