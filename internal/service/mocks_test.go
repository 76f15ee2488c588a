package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

// mockAPI defaults to a healthy group where the bot is an administrator;
// individual tests override the func fields they care about.
type mockAPI struct {
	mu   sync.Mutex
	seq  int
	sent []sentMessage

	sendFunc      func(ctx context.Context, chatID int64, msg chat.Outgoing) (chat.MessageRef, error)
	botStatusFunc func(ctx context.Context, chatID int64) (chat.MemberStatus, error)
	restrictFunc  func(ctx context.Context, chatID, userID int64, until time.Time) error
}

type sentMessage struct {
	ChatID int64
	Msg    chat.Outgoing
}

func (m *mockAPI) Send(ctx context.Context, chatID int64, msg chat.Outgoing) (chat.MessageRef, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, chatID, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Msg: msg})
	return chat.MessageRef{ChatID: chatID, MessageID: fmt.Sprintf("m%d", m.seq)}, nil
}

func (m *mockAPI) Edit(context.Context, chat.MessageRef, chat.Outgoing) error { return nil }

func (m *mockAPI) Delete(context.Context, chat.MessageRef) error { return nil }

func (m *mockAPI) MemberStatus(context.Context, int64, int64) (chat.MemberStatus, error) {
	return chat.StatusMember, nil
}

func (m *mockAPI) BotStatus(ctx context.Context, chatID int64) (chat.MemberStatus, error) {
	if m.botStatusFunc != nil {
		return m.botStatusFunc(ctx, chatID)
	}
	return chat.StatusAdministrator, nil
}

func (m *mockAPI) Restrict(ctx context.Context, chatID, userID int64, until time.Time) error {
	if m.restrictFunc != nil {
		return m.restrictFunc(ctx, chatID, userID, until)
	}
	return nil
}

func (m *mockAPI) sentTo(chatID int64) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, s := range m.sent {
		if s.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out
}
