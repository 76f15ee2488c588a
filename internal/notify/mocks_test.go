package notify

import (
	"context"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

type mockAPI struct {
	sendFunc func(ctx context.Context, chatID int64, msg chat.Outgoing) (chat.MessageRef, error)
}

func (m *mockAPI) Send(ctx context.Context, chatID int64, msg chat.Outgoing) (chat.MessageRef, error) {
	return m.sendFunc(ctx, chatID, msg)
}

func (m *mockAPI) Edit(context.Context, chat.MessageRef, chat.Outgoing) error { return nil }

func (m *mockAPI) Delete(context.Context, chat.MessageRef) error { return nil }

func (m *mockAPI) MemberStatus(context.Context, int64, int64) (chat.MemberStatus, error) {
	return chat.StatusMember, nil
}

func (m *mockAPI) BotStatus(context.Context, int64) (chat.MemberStatus, error) {
	return chat.StatusAdministrator, nil
}

func (m *mockAPI) Restrict(context.Context, int64, int64, time.Time) error { return nil }
