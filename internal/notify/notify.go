// Package notify fans a message out to a set of recipients. Delivery is
// best-effort per recipient: one failed send never aborts the batch.
package notify

import (
	"context"
	"log/slog"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/metrics"
)

type Delivery struct {
	Recipient int64
	Ref       chat.MessageRef
	Err       error
}

type Dispatcher struct {
	logger *slog.Logger
	api    chat.API
}

func NewDispatcher(logger *slog.Logger, api chat.API) *Dispatcher {
	return &Dispatcher{logger: logger, api: api}
}

// Broadcast sends msg to every recipient and returns one Delivery per
// recipient in order. Failures are logged and collected; the caller decides
// whether any of them is consequential.
func (d *Dispatcher) Broadcast(ctx context.Context, recipients []int64, msg chat.Outgoing) []Delivery {
	deliveries := make([]Delivery, 0, len(recipients))
	for _, recipient := range recipients {
		ref, err := d.api.Send(ctx, recipient, msg)
		if err != nil {
			d.logger.Warn("Notification delivery failed", "recipient", recipient, "error", err)
			metrics.IncNotificationFailure()
		}
		deliveries = append(deliveries, Delivery{Recipient: recipient, Ref: ref, Err: err})
	}
	return deliveries
}

// Delivered filters the refs of successful deliveries.
func Delivered(deliveries []Delivery) []chat.MessageRef {
	var refs []chat.MessageRef
	for _, d := range deliveries {
		if d.Err == nil {
			refs = append(refs, d.Ref)
		}
	}
	return refs
}
