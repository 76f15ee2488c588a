package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testPolicy() Policy {
	return Policy{
		FalseReportLimit:   3,
		FalseReportMute:    30 * time.Minute,
		SpamRepeatLimit:    3,
		SpamMute:           10 * time.Minute,
		AcceptedReportMute: 2 * time.Hour,
	}
}

func TestPolicy_Decide(t *testing.T) {
	tests := []struct {
		name         string
		reason       Reason
		count        int
		wantOrder    bool
		wantDuration time.Duration
	}{
		{
			name:      "false report below threshold",
			reason:    FalseReportThreshold,
			count:     2,
			wantOrder: false,
		},
		{
			name:         "false report at threshold",
			reason:       FalseReportThreshold,
			count:        3,
			wantOrder:    true,
			wantDuration: 30 * time.Minute,
		},
		{
			name:         "false report above threshold",
			reason:       FalseReportThreshold,
			count:        4,
			wantOrder:    true,
			wantDuration: 30 * time.Minute,
		},
		{
			name:      "spam at limit stays allowed",
			reason:    SpamThreshold,
			count:     3,
			wantOrder: false,
		},
		{
			name:         "spam past limit",
			reason:       SpamThreshold,
			count:        4,
			wantOrder:    true,
			wantDuration: 10 * time.Minute,
		},
		{
			name:         "accepted report ignores count",
			reason:       AcceptedReport,
			count:        0,
			wantOrder:    true,
			wantDuration: 2 * time.Hour,
		},
		{
			name:      "unknown reason",
			reason:    Reason("other"),
			count:     100,
			wantOrder: false,
		},
	}

	p := testPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := p.Decide(tt.reason, -10, 5, tt.count)
			if !tt.wantOrder {
				assert.Nil(t, order)
				return
			}
			if assert.NotNil(t, order) {
				assert.Equal(t, tt.wantDuration, order.Duration)
				assert.Equal(t, tt.reason, order.Reason)
				assert.Equal(t, int64(-10), order.GroupID)
				assert.Equal(t, int64(5), order.UserID)
			}
		})
	}
}
