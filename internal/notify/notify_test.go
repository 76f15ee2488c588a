package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdnahidul337/report-support/internal/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestDispatcher_Broadcast(t *testing.T) {
	errBlocked := errors.New("bot blocked by user")

	api := &mockAPI{
		sendFunc: func(_ context.Context, chatID int64, _ chat.Outgoing) (chat.MessageRef, error) {
			if chatID == 2 {
				return chat.MessageRef{}, errBlocked
			}
			return chat.MessageRef{ChatID: chatID, MessageID: fmt.Sprintf("m%d", chatID)}, nil
		},
	}

	d := NewDispatcher(testLogger(), api)
	deliveries := d.Broadcast(context.Background(), []int64{1, 2, 3}, chat.Outgoing{Text: "hi"})

	if assert.Len(t, deliveries, 3, "one failed recipient must not abort the batch") {
		assert.NoError(t, deliveries[0].Err)
		assert.ErrorIs(t, deliveries[1].Err, errBlocked)
		assert.NoError(t, deliveries[2].Err)
	}

	refs := Delivered(deliveries)
	assert.Equal(t, []chat.MessageRef{
		{ChatID: 1, MessageID: "m1"},
		{ChatID: 3, MessageID: "m3"},
	}, refs)
}

func TestDispatcher_Broadcast_Empty(t *testing.T) {
	api := &mockAPI{
		sendFunc: func(context.Context, int64, chat.Outgoing) (chat.MessageRef, error) {
			t.Fatal("no send expected")
			return chat.MessageRef{}, nil
		},
	}

	d := NewDispatcher(testLogger(), api)
	deliveries := d.Broadcast(context.Background(), nil, chat.Outgoing{Text: "hi"})
	assert.Empty(t, deliveries)
	assert.Empty(t, Delivered(deliveries))
}
