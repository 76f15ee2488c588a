package enforcer

import (
	"context"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

type mockAPI struct {
	botStatusFunc func(ctx context.Context, chatID int64) (chat.MemberStatus, error)
	restrictFunc  func(ctx context.Context, chatID, userID int64, until time.Time) error
}

func (m *mockAPI) Send(context.Context, int64, chat.Outgoing) (chat.MessageRef, error) {
	return chat.MessageRef{}, nil
}

func (m *mockAPI) Edit(context.Context, chat.MessageRef, chat.Outgoing) error { return nil }

func (m *mockAPI) Delete(context.Context, chat.MessageRef) error { return nil }

func (m *mockAPI) MemberStatus(context.Context, int64, int64) (chat.MemberStatus, error) {
	return chat.StatusMember, nil
}

func (m *mockAPI) BotStatus(ctx context.Context, chatID int64) (chat.MemberStatus, error) {
	return m.botStatusFunc(ctx, chatID)
}

func (m *mockAPI) Restrict(ctx context.Context, chatID, userID int64, until time.Time) error {
	return m.restrictFunc(ctx, chatID, userID, until)
}
