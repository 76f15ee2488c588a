package filters

import (
	"context"
	"time"

	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/pipeline"
	"github.com/mdnahidul337/report-support/internal/repository"
	"github.com/mdnahidul337/report-support/internal/utils"
)

// SpamFilter counts repeated identical message content per (chat, user)
// within a sliding window. Counters live in the durable store, so a restart
// does not forget a flood in progress.
type SpamFilter struct {
	counters repository.CounterRepository
	window   time.Duration
	limit    int
	muteFor  time.Duration
	now      func() time.Time
}

func NewSpamFilter(counters repository.CounterRepository, window time.Duration, limit int, muteFor time.Duration) *SpamFilter {
	return &SpamFilter{
		counters: counters,
		window:   window,
		limit:    limit,
		muteFor:  muteFor,
		now:      time.Now,
	}
}

func (f *SpamFilter) Name() string {
	return "spam_filter"
}

func (f *SpamFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	text := utils.NormalizeText(payload.Text)
	if text == "" {
		return &pipeline.Result{IsAllowed: true}, nil
	}

	_, exceeded, err := f.counters.RecordMessage(payload.ChatID, payload.SenderID, text, f.now(), f.window, f.limit)
	if err != nil {
		return nil, err
	}
	if exceeded {
		return &pipeline.Result{
			IsAllowed:    false,
			Reason:       messages.MsgReasonSpam,
			FilterName:   f.Name(),
			ShouldDelete: true,
			ShouldMute:   true,
			MuteDuration: f.muteFor,
		}, nil
	}
	return &pipeline.Result{IsAllowed: true}, nil
}
