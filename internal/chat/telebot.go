package chat

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tb "gopkg.in/telebot.v3"
)

// TelebotAPI adapts *telebot.Bot to the API interface. Context deadlines are
// not threaded into telebot; calls are bounded by the HTTP client timeout set
// in app wiring.
type TelebotAPI struct {
	bot *tb.Bot
}

func NewTelebotAPI(bot *tb.Bot) *TelebotAPI {
	return &TelebotAPI{bot: bot}
}

func (a *TelebotAPI) Send(_ context.Context, chatID int64, msg Outgoing) (MessageRef, error) {
	opts := &tb.SendOptions{ParseMode: tb.ModeMarkdown}
	if markup := buildMarkup(msg.Buttons); markup != nil {
		opts.ReplyMarkup = markup
	}
	sent, err := a.bot.Send(tb.ChatID(chatID), msg.Text, opts)
	if err != nil {
		return MessageRef{}, fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return MessageRef{ChatID: chatID, MessageID: strconv.Itoa(sent.ID)}, nil
}

func (a *TelebotAPI) Edit(_ context.Context, ref MessageRef, msg Outgoing) error {
	opts := &tb.SendOptions{ParseMode: tb.ModeMarkdown}
	if markup := buildMarkup(msg.Buttons); markup != nil {
		opts.ReplyMarkup = markup
	}
	stored := tb.StoredMessage{MessageID: ref.MessageID, ChatID: ref.ChatID}
	if _, err := a.bot.Edit(stored, msg.Text, opts); err != nil {
		return fmt.Errorf("edit message %s in chat %d: %w", ref.MessageID, ref.ChatID, err)
	}
	return nil
}

func (a *TelebotAPI) Delete(_ context.Context, ref MessageRef) error {
	stored := tb.StoredMessage{MessageID: ref.MessageID, ChatID: ref.ChatID}
	if err := a.bot.Delete(stored); err != nil {
		return fmt.Errorf("delete message %s in chat %d: %w", ref.MessageID, ref.ChatID, err)
	}
	return nil
}

func (a *TelebotAPI) MemberStatus(_ context.Context, chatID, userID int64) (MemberStatus, error) {
	member, err := a.bot.ChatMemberOf(&tb.Chat{ID: chatID}, &tb.User{ID: userID})
	if err != nil {
		return StatusUnknown, fmt.Errorf("get member %d of chat %d: %w", userID, chatID, err)
	}
	return roleToStatus(member.Role), nil
}

func (a *TelebotAPI) BotStatus(ctx context.Context, chatID int64) (MemberStatus, error) {
	return a.MemberStatus(ctx, chatID, a.bot.Me.ID)
}

func (a *TelebotAPI) Restrict(_ context.Context, chatID, userID int64, until time.Time) error {
	member := &tb.ChatMember{
		User:            &tb.User{ID: userID},
		RestrictedUntil: until.Unix(),
		Rights: tb.Rights{
			CanSendMessages: false,
			CanSendMedia:    false,
			CanSendPolls:    false,
			CanSendOther:    false,
			CanAddPreviews:  false,
		},
	}
	if err := a.bot.Restrict(&tb.Chat{ID: chatID}, member); err != nil {
		return fmt.Errorf("restrict user %d in chat %d: %w", userID, chatID, err)
	}
	return nil
}

func buildMarkup(rows [][]Button) *tb.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	markup := &tb.ReplyMarkup{}
	var tbRows []tb.Row
	for _, row := range rows {
		var btns []tb.Btn
		for _, b := range row {
			btns = append(btns, markup.Data(b.Label, b.Unique, b.Data))
		}
		tbRows = append(tbRows, markup.Row(btns...))
	}
	markup.Inline(tbRows...)
	return markup
}

func roleToStatus(role tb.MemberStatus) MemberStatus {
	switch role {
	case tb.Creator:
		return StatusCreator
	case tb.Administrator:
		return StatusAdministrator
	case tb.Member:
		return StatusMember
	case tb.Restricted:
		return StatusRestricted
	case tb.Left:
		return StatusLeft
	case tb.Kicked:
		return StatusKicked
	}
	return StatusUnknown
}

// Mention renders a markdown mention that works for users without a
// public username.
func Mention(name string, userID int64) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("[%s](tg://user?id=%d)", name, userID)
}

// MessageLink builds a t.me deep link to a message in a supergroup. Returns
// an empty string for chats without linkable messages.
func MessageLink(ref MessageRef) string {
	// Supergroup IDs are -100 followed by the internal ID.
	if ref.ChatID >= -1000000000000 || ref.MessageID == "" {
		return ""
	}
	internal := -ref.ChatID - 1000000000000
	return fmt.Sprintf("https://t.me/c/%d/%s", internal, ref.MessageID)
}
