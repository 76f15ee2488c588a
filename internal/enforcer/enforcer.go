// Package enforcer applies restriction orders against the chat platform.
package enforcer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/metrics"
	"github.com/mdnahidul337/report-support/internal/policy"
)

// ErrInsufficientPrivilege means the bot is not an administrator of the
// target group. The caller surfaces it to admins; it is never swallowed here.
var ErrInsufficientPrivilege = errors.New("bot lacks administrator rights in the group")

type Enforcer struct {
	logger *slog.Logger
	api    chat.API
	now    func() time.Time
}

func New(logger *slog.Logger, api chat.API) *Enforcer {
	return &Enforcer{logger: logger, api: api, now: time.Now}
}

// Apply verifies the bot's standing and restricts the target user until
// now + order.Duration. The mutating restrict call is never retried; a
// transient failure is returned wrapped for the caller to report.
func (e *Enforcer) Apply(ctx context.Context, order policy.Order) (time.Time, error) {
	status, err := e.api.BotStatus(ctx, order.GroupID)
	if err != nil {
		return time.Time{}, fmt.Errorf("verify bot standing in chat %d: %w", order.GroupID, err)
	}
	if !status.CanRestrict() {
		return time.Time{}, ErrInsufficientPrivilege
	}

	until := e.now().Add(order.Duration)
	if err := e.api.Restrict(ctx, order.GroupID, order.UserID, until); err != nil {
		return time.Time{}, err
	}

	e.logger.Info("Restriction applied",
		"chat_id", order.GroupID,
		"user_id", order.UserID,
		"reason", string(order.Reason),
		"until", until,
	)
	metrics.IncRestriction(string(order.Reason))
	return until, nil
}
