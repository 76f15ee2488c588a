package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/config"
	"github.com/mdnahidul337/report-support/internal/enforcer"
	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/metrics"
	"github.com/mdnahidul337/report-support/internal/notify"
	"github.com/mdnahidul337/report-support/internal/pipeline"
	"github.com/mdnahidul337/report-support/internal/pipeline/filters"
	"github.com/mdnahidul337/report-support/internal/policy"
	"github.com/mdnahidul337/report-support/internal/repository"
)

// ErrIneligibleReport marks intake that fails validation. Per the error
// taxonomy it is ignored silently at the handler boundary, never surfaced to
// the sender.
var ErrIneligibleReport = errors.New("report intake ineligible")

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ReportIntake is a validated-enough flag event handed in by the handler:
// a reply in a group whose text carried the trigger token.
type ReportIntake struct {
	GroupID      int64
	GroupTitle   string
	ReporterID   int64
	ReporterName string
	ReportedID   int64
	ReportedName string
	Message      chat.MessageRef
	Excerpt      string
}

// Resolution is the outcome of one admin decision: the terminal report, the
// restriction the policy demands (nil when none) and, on reject, the
// reporter's false-report count at decision time.
type Resolution struct {
	Report       *repository.Report
	Order        *policy.Order
	FalseReports int
}

type Service interface {
	ObserveGroupMessage(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error)
	SubmitReport(ctx context.Context, intake ReportIntake) (*repository.Report, error)
	ResolveReport(ctx context.Context, reportID string, decision Decision, adminID int64) (*Resolution, error)
	EnforceOrder(ctx context.Context, order policy.Order) (time.Time, error)

	AddLink(ctx context.Context, number int, url, dateLabel string, addedBy int64) (*repository.LinkEntry, error)
	GetLink(ctx context.Context, number int) (*repository.LinkEntry, error)
	ListLinks(ctx context.Context) ([]repository.LinkEntry, error)
	DeleteLink(ctx context.Context, number int) error

	ScheduleDeletion(ctx context.Context, ref chat.MessageRef, duration time.Duration) error
	StartCleanupTask(ctx context.Context)
	StartMetricsUpdater(ctx context.Context)
}

type ModerationService struct {
	logger       *slog.Logger
	reports      repository.ReportRepository
	counters     repository.CounterRepository
	links        repository.LinkRepository
	tempMessages repository.TemporaryMessageRepository
	pol          policy.Policy
	notifier     *notify.Dispatcher
	enforcer     *enforcer.Enforcer
	api          chat.API
	admins       []int64
	pipeline     *pipeline.Manager
	tracer       trace.Tracer
}

func NewModerationService(
	logger *slog.Logger,
	reports repository.ReportRepository,
	counters repository.CounterRepository,
	links repository.LinkRepository,
	tempMessages repository.TemporaryMessageRepository,
	pol policy.Policy,
	notifier *notify.Dispatcher,
	enf *enforcer.Enforcer,
	api chat.API,
	cfg *config.Config,
) Service {
	spamFilter := filters.NewSpamFilter(counters, cfg.SpamWindow, cfg.SpamRepeatLimit, cfg.SpamMuteDuration)

	return &ModerationService{
		logger:       logger,
		reports:      reports,
		counters:     counters,
		links:        links,
		tempMessages: tempMessages,
		pol:          pol,
		notifier:     notifier,
		enforcer:     enf,
		api:          api,
		admins:       cfg.AdminUserIDs,
		pipeline:     pipeline.NewManager(spamFilter),
		tracer:       otel.Tracer("service"),
	}
}

// ObserveGroupMessage runs the always-on filter chain over one group
// message. Each physical chat event must be delivered exactly once.
func (s *ModerationService) ObserveGroupMessage(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	ctx, span := s.tracer.Start(ctx, "ObserveGroupMessage")
	defer span.End()

	s.logger.Debug("Observing message", "chat_id", payload.ChatID, "user_id", payload.SenderID)
	return s.pipeline.Process(ctx, payload)
}

// SubmitReport validates intake, persists the pending report and fans the
// admin prompt out. The report is durable before the first notification goes
// out, so a crash mid-broadcast never loses the flag.
func (s *ModerationService) SubmitReport(ctx context.Context, intake ReportIntake) (*repository.Report, error) {
	ctx, span := s.tracer.Start(ctx, "SubmitReport")
	defer span.End()

	if intake.ReportedID == 0 || intake.ReporterID == intake.ReportedID {
		return nil, ErrIneligibleReport
	}

	// Fail closed: if the bot's own standing cannot be verified, the report
	// is not created.
	status, err := s.api.BotStatus(ctx, intake.GroupID)
	if err != nil {
		return nil, fmt.Errorf("cannot verify bot standing: %w", err)
	}
	if !status.InGroup() {
		return nil, ErrIneligibleReport
	}

	rep, err := s.reports.Create(&repository.Report{
		ReporterID:   intake.ReporterID,
		ReporterName: intake.ReporterName,
		ReportedID:   intake.ReportedID,
		ReportedName: intake.ReportedName,
		GroupID:      intake.GroupID,
		GroupTitle:   intake.GroupTitle,
		Message:      intake.Message,
		Excerpt:      intake.Excerpt,
	})
	if err != nil {
		return nil, err
	}
	metrics.IncReportCreated()

	deliveries := s.notifier.Broadcast(ctx, s.admins, AdminPrompt(rep))
	refs := notify.Delivered(deliveries)
	if len(refs) == 0 {
		s.logger.Error("Report reached no admin", "report_id", rep.ID)
	}
	if err := s.reports.SetAdminMessages(rep.ID, refs); err != nil {
		s.logger.Error("Failed to record admin message refs", "report_id", rep.ID, "error", err)
	}
	rep.AdminMessages = refs
	return rep, nil
}

// ResolveReport applies one admin decision. The terminal transition is
// linearized inside the store; a second decision fails with
// repository.ErrAlreadyResolved and mutates nothing.
func (s *ModerationService) ResolveReport(ctx context.Context, reportID string, decision Decision, adminID int64) (*Resolution, error) {
	_, span := s.tracer.Start(ctx, "ResolveReport")
	defer span.End()

	status := repository.ReportAccepted
	if decision == DecisionReject {
		status = repository.ReportRejected
	}

	rep, err := s.reports.Resolve(reportID, status, adminID, time.Now())
	if err != nil {
		return nil, err
	}
	metrics.IncReportDecision(string(decision))

	res := &Resolution{Report: rep}
	switch decision {
	case DecisionAccept:
		order := s.pol.Decide(policy.AcceptedReport, rep.GroupID, rep.ReportedID, 0)
		order.UserName = rep.ReportedName
		res.Order = order
	case DecisionReject:
		count, fired, err := s.counters.AddFalseReport(rep.GroupID, rep.ReporterID, s.pol.FalseReportLimit)
		if err != nil {
			// The rejection is durable; the counter failed to persist. Log
			// loudly so the miss can be reconciled, do not undo the decision.
			s.logger.Error("Failed to count false report", "report_id", rep.ID, "error", err)
			return res, nil
		}
		res.FalseReports = count
		if fired {
			order := s.pol.Decide(policy.FalseReportThreshold, rep.GroupID, rep.ReporterID, count)
			if order != nil {
				order.UserName = rep.ReporterName
				res.Order = order
			}
		}
	}
	return res, nil
}

// EnforceOrder hands a restriction to the executor. ErrInsufficientPrivilege
// comes back unwrapped so callers can surface it to admins.
func (s *ModerationService) EnforceOrder(ctx context.Context, order policy.Order) (time.Time, error) {
	ctx, span := s.tracer.Start(ctx, "EnforceOrder")
	defer span.End()

	return s.enforcer.Apply(ctx, order)
}

// AdminPrompt is the notification sent to each admin for a pending report,
// with the two decision controls attached.
func AdminPrompt(rep *repository.Report) chat.Outgoing {
	return chat.Outgoing{
		Text: promptText(rep),
		Buttons: [][]chat.Button{{
			{Label: "✅ Accept", Unique: chat.BtnAcceptReport, Data: rep.ID},
			{Label: "❌ Reject", Unique: chat.BtnRejectReport, Data: rep.ID},
		}},
	}
}

// AdminPromptResolved is the in-place edit of the prompt once a report is
// terminal: same body, outcome appended, controls removed.
func AdminPromptResolved(rep *repository.Report) chat.Outgoing {
	suffix := messages.MsgReportAcceptedSuffix
	if rep.Status == repository.ReportRejected {
		suffix = messages.MsgReportRejectedSuffix
	}
	return chat.Outgoing{Text: promptText(rep) + suffix}
}

func promptText(rep *repository.Report) string {
	text := fmt.Sprintf(messages.MsgNewReport,
		chat.Mention(rep.ReporterName, rep.ReporterID),
		chat.Mention(rep.ReportedName, rep.ReportedID),
		rep.GroupTitle,
		rep.Excerpt,
	)
	if link := chat.MessageLink(rep.Message); link != "" {
		text += fmt.Sprintf("\n\n[View message](%s)", link)
	}
	return text
}
