package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/config"
	"github.com/mdnahidul337/report-support/internal/enforcer"
	"github.com/mdnahidul337/report-support/internal/notify"
	"github.com/mdnahidul337/report-support/internal/pipeline"
	"github.com/mdnahidul337/report-support/internal/policy"
	"github.com/mdnahidul337/report-support/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		AdminUserIDs: []int64{100, 200},
		StatePath:    "state.json",

		SpamWindow:       5 * time.Minute,
		SpamRepeatLimit:  3,
		SpamMuteDuration: 10 * time.Minute,

		FalseReportThreshold:    3,
		FalseReportMuteDuration: 30 * time.Minute,

		AcceptedReportMuteDuration: 2 * time.Hour,
	}
}

func newTestService(t *testing.T, api *mockAPI) Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := repository.OpenStore(logger, filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}

	cfg := testConfig()
	return NewModerationService(
		logger,
		repository.NewReportRepository(store),
		repository.NewCounterRepository(store),
		repository.NewLinkRepository(store),
		repository.NewTemporaryMessageRepository(store),
		policy.FromConfig(cfg),
		notify.NewDispatcher(logger, api),
		enforcer.New(logger, api),
		api,
		cfg,
	)
}

func testIntake() ReportIntake {
	return ReportIntake{
		GroupID:      -10,
		GroupTitle:   "Test Group",
		ReporterID:   1,
		ReporterName: "Rita",
		ReportedID:   2,
		ReportedName: "Ted",
		Message:      chat.MessageRef{ChatID: -10, MessageID: "42"},
		Excerpt:      "spammy text",
	}
}

func TestSubmitReport(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	rep, err := svc.SubmitReport(context.Background(), testIntake())
	assert.NoError(t, err)
	assert.Equal(t, repository.ReportPending, rep.Status)
	assert.Len(t, rep.AdminMessages, 2, "every configured admin gets a prompt")

	for _, adminID := range []int64{100, 200} {
		sent := api.sentTo(adminID)
		if assert.Len(t, sent, 1) {
			assert.Contains(t, sent[0].Msg.Text, "Rita")
			assert.Contains(t, sent[0].Msg.Text, "Ted")
			if assert.Len(t, sent[0].Msg.Buttons, 1) {
				assert.Len(t, sent[0].Msg.Buttons[0], 2)
				assert.Equal(t, rep.ID, sent[0].Msg.Buttons[0][0].Data)
			}
		}
	}
}

func TestSubmitReport_PartialDelivery(t *testing.T) {
	inner := &mockAPI{}
	api := &mockAPI{
		sendFunc: func(ctx context.Context, chatID int64, msg chat.Outgoing) (chat.MessageRef, error) {
			if chatID == 100 {
				return chat.MessageRef{}, errors.New("bot blocked by user")
			}
			return inner.Send(ctx, chatID, msg)
		},
	}
	svc := newTestService(t, api)

	rep, err := svc.SubmitReport(context.Background(), testIntake())
	assert.NoError(t, err, "one unreachable admin must not fail the report")
	assert.Len(t, rep.AdminMessages, 1)
	assert.Equal(t, int64(200), rep.AdminMessages[0].ChatID)
}

func TestSubmitReport_SelfReport(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	intake := testIntake()
	intake.ReportedID = intake.ReporterID

	_, err := svc.SubmitReport(context.Background(), intake)
	assert.ErrorIs(t, err, ErrIneligibleReport)
	assert.Empty(t, api.sentTo(100), "no admin prompt for ineligible intake")
}

func TestSubmitReport_BotStandingUnverifiable(t *testing.T) {
	api := &mockAPI{
		botStatusFunc: func(context.Context, int64) (chat.MemberStatus, error) {
			return chat.StatusUnknown, errors.New("timeout")
		},
	}
	svc := newTestService(t, api)

	_, err := svc.SubmitReport(context.Background(), testIntake())
	assert.Error(t, err, "fail closed when the bot's standing cannot be verified")
	assert.NotErrorIs(t, err, ErrIneligibleReport)
}

func TestSubmitReport_BotNotInGroup(t *testing.T) {
	api := &mockAPI{
		botStatusFunc: func(context.Context, int64) (chat.MemberStatus, error) {
			return chat.StatusLeft, nil
		},
	}
	svc := newTestService(t, api)

	_, err := svc.SubmitReport(context.Background(), testIntake())
	assert.ErrorIs(t, err, ErrIneligibleReport)
}

func TestResolveReport_Accept(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	rep, err := svc.SubmitReport(context.Background(), testIntake())
	assert.NoError(t, err)

	res, err := svc.ResolveReport(context.Background(), rep.ID, DecisionAccept, 100)
	assert.NoError(t, err)
	assert.Equal(t, repository.ReportAccepted, res.Report.Status)
	assert.Equal(t, int64(100), res.Report.ResolvedBy)

	if assert.NotNil(t, res.Order, "an accepted report always produces a restriction") {
		assert.Equal(t, rep.ReportedID, res.Order.UserID)
		assert.Equal(t, "Ted", res.Order.UserName)
		assert.Equal(t, 2*time.Hour, res.Order.Duration)
		assert.Equal(t, policy.AcceptedReport, res.Order.Reason)
	}
}

func TestResolveReport_RejectBelowThreshold(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	rep, err := svc.SubmitReport(context.Background(), testIntake())
	assert.NoError(t, err)

	res, err := svc.ResolveReport(context.Background(), rep.ID, DecisionReject, 100)
	assert.NoError(t, err)
	assert.Equal(t, repository.ReportRejected, res.Report.Status)
	assert.Equal(t, 1, res.FalseReports)
	assert.Nil(t, res.Order, "first rejection stays below the threshold")
}

func TestResolveReport_RejectThresholdFires(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	ctx := context.Background()
	var last *Resolution
	for i := 0; i < 3; i++ {
		rep, err := svc.SubmitReport(ctx, testIntake())
		assert.NoError(t, err)
		last, err = svc.ResolveReport(ctx, rep.ID, DecisionReject, 100)
		assert.NoError(t, err)
	}

	if assert.NotNil(t, last.Order, "third rejection must fire the restriction") {
		assert.Equal(t, int64(1), last.Order.UserID, "the mute targets the reporter")
		assert.Equal(t, "Rita", last.Order.UserName)
		assert.Equal(t, 30*time.Minute, last.Order.Duration)
		assert.Equal(t, policy.FalseReportThreshold, last.Order.Reason)
	}

	// The counter reset means the next rejection starts over.
	rep, err := svc.SubmitReport(ctx, testIntake())
	assert.NoError(t, err)
	res, err := svc.ResolveReport(ctx, rep.ID, DecisionReject, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.FalseReports)
	assert.Nil(t, res.Order)
}

func TestResolveReport_AlreadyResolved(t *testing.T) {
	api := &mockAPI{}
	svc := newTestService(t, api)

	ctx := context.Background()
	rep, err := svc.SubmitReport(ctx, testIntake())
	assert.NoError(t, err)

	_, err = svc.ResolveReport(ctx, rep.ID, DecisionAccept, 100)
	assert.NoError(t, err)

	_, err = svc.ResolveReport(ctx, rep.ID, DecisionReject, 200)
	assert.ErrorIs(t, err, repository.ErrAlreadyResolved)
}

func TestResolveReport_Unknown(t *testing.T) {
	svc := newTestService(t, &mockAPI{})

	_, err := svc.ResolveReport(context.Background(), "g1:u2:t3:1", DecisionAccept, 100)
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}

func TestObserveGroupMessage_Spam(t *testing.T) {
	svc := newTestService(t, &mockAPI{})

	ctx := context.Background()
	payload := pipeline.Payload{ChatID: -10, SenderID: 5, Text: "Buy NOW"}

	for i := 0; i < 3; i++ {
		res, err := svc.ObserveGroupMessage(ctx, payload)
		assert.NoError(t, err)
		assert.True(t, res.IsAllowed)
	}

	res, err := svc.ObserveGroupMessage(ctx, payload)
	assert.NoError(t, err)
	assert.False(t, res.IsAllowed, "the repeat past the limit must be blocked")
	assert.True(t, res.ShouldDelete)
	assert.True(t, res.ShouldMute)
	assert.Equal(t, 10*time.Minute, res.MuteDuration)
}

func TestEnforceOrder(t *testing.T) {
	restricted := false
	api := &mockAPI{
		restrictFunc: func(_ context.Context, chatID, userID int64, until time.Time) error {
			restricted = true
			assert.Equal(t, int64(-10), chatID)
			assert.Equal(t, int64(2), userID)
			assert.WithinDuration(t, time.Now().Add(2*time.Hour), until, 5*time.Second)
			return nil
		},
	}
	svc := newTestService(t, api)

	order := policy.Order{GroupID: -10, UserID: 2, Duration: 2 * time.Hour, Reason: policy.AcceptedReport}
	_, err := svc.EnforceOrder(context.Background(), order)
	assert.NoError(t, err)
	assert.True(t, restricted)
}

func TestEnforceOrder_InsufficientPrivilege(t *testing.T) {
	api := &mockAPI{
		botStatusFunc: func(context.Context, int64) (chat.MemberStatus, error) {
			return chat.StatusMember, nil
		},
	}
	svc := newTestService(t, api)

	order := policy.Order{GroupID: -10, UserID: 2, Duration: time.Hour, Reason: policy.AcceptedReport}
	_, err := svc.EnforceOrder(context.Background(), order)
	assert.ErrorIs(t, err, enforcer.ErrInsufficientPrivilege)
}

func TestLinkRegistry(t *testing.T) {
	svc := newTestService(t, &mockAPI{})
	ctx := context.Background()

	first, err := svc.AddLink(ctx, 0, "https://example.com/a", "1 Jan", 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Number, "auto-numbering starts at 1")

	second, err := svc.AddLink(ctx, 5, "https://example.com/b", "2 Jan", 100)
	assert.NoError(t, err)
	assert.Equal(t, 5, second.Number)

	_, err = svc.AddLink(ctx, 3, "https://example.com/c", "", 100)
	assert.ErrorIs(t, err, repository.ErrLinkNumberUsed, "numbers never go backwards")

	got, err := svc.GetLink(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/b", got.URL)

	list, err := svc.ListLinks(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	assert.NoError(t, svc.DeleteLink(ctx, 1))
	assert.ErrorIs(t, svc.DeleteLink(ctx, 1), repository.ErrLinkNotFound)

	list, err = svc.ListLinks(ctx)
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, 5, list[0].Number)
	}
}
