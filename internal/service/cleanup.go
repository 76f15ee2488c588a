package service

import (
	"context"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/metrics"
)

// ScheduleDeletion queues a transient message for removal after duration.
// The queue is durable, so pending deletions survive a restart.
func (s *ModerationService) ScheduleDeletion(_ context.Context, ref chat.MessageRef, duration time.Duration) error {
	return s.tempMessages.Add(ref, duration)
}

func (s *ModerationService) StartCleanupTask(ctx context.Context) {
	ticker := time.NewTicker(2 * time.Second)

	cleanup := func() {
		expired, err := s.tempMessages.GetExpired(time.Now(), 50)
		if err != nil {
			s.logger.Error("Failed to get expired messages", "error", err)
			return
		}
		if len(expired) == 0 {
			return
		}

		var done []chat.MessageRef
		for _, msg := range expired {
			if err := s.api.Delete(ctx, msg.Message); err != nil {
				// Removed from the queue regardless: the message may already
				// be gone from the chat.
				s.logger.Warn("Failed to delete expired message",
					"message_id", msg.Message.MessageID, "chat_id", msg.Message.ChatID, "error", err)
			} else {
				metrics.IncDeletedMessages("temp_expired")
			}
			done = append(done, msg.Message)
		}

		if err := s.tempMessages.Delete(done); err != nil {
			s.logger.Error("Failed to drop expired messages from queue", "error", err)
		}
	}

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanup()
			}
		}
	}()
}

func (s *ModerationService) StartMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)

	update := func() {
		count, err := s.reports.CountPending()
		if err != nil {
			s.logger.Error("Failed to count pending reports", "error", err)
			return
		}
		metrics.SetPendingReports(float64(count))
	}

	go update()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}
