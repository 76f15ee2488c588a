// Package policy maps accumulated moderation counters to timed restrictions.
// Decide is pure; every threshold and duration comes from configuration.
package policy

import (
	"time"

	"github.com/mdnahidul337/report-support/internal/config"
)

type Reason string

const (
	FalseReportThreshold Reason = "false_report_threshold"
	SpamThreshold        Reason = "spam_threshold"
	AcceptedReport       Reason = "accepted_report"
)

// Order is a derived value object describing one restriction to apply. It is
// never persisted on its own.
type Order struct {
	GroupID  int64
	UserID   int64
	UserName string
	Duration time.Duration
	Reason   Reason
}

type Policy struct {
	FalseReportLimit   int
	FalseReportMute    time.Duration
	SpamRepeatLimit    int
	SpamMute           time.Duration
	AcceptedReportMute time.Duration
}

func FromConfig(cfg *config.Config) Policy {
	return Policy{
		FalseReportLimit:   cfg.FalseReportThreshold,
		FalseReportMute:    cfg.FalseReportMuteDuration,
		SpamRepeatLimit:    cfg.SpamRepeatLimit,
		SpamMute:           cfg.SpamMuteDuration,
		AcceptedReportMute: cfg.AcceptedReportMuteDuration,
	}
}

// Decide returns the restriction warranted by the current count, or nil.
//
//   - FalseReportThreshold fires at the configured rejection count.
//   - SpamThreshold fires on the repeat after the configured limit.
//   - AcceptedReport always fires; the count is ignored.
func (p Policy) Decide(reason Reason, groupID, userID int64, count int) *Order {
	var duration time.Duration
	switch reason {
	case FalseReportThreshold:
		if count < p.FalseReportLimit {
			return nil
		}
		duration = p.FalseReportMute
	case SpamThreshold:
		if count <= p.SpamRepeatLimit {
			return nil
		}
		duration = p.SpamMute
	case AcceptedReport:
		duration = p.AcceptedReportMute
	default:
		return nil
	}
	return &Order{
		GroupID:  groupID,
		UserID:   userID,
		Duration: duration,
		Reason:   reason,
	}
}
