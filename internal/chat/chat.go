package chat

import (
	"context"
	"time"
)

// MessageRef points at one message in one chat. It is stored as-is in the
// state document so resolved admin prompts can be edited later.
type MessageRef struct {
	ChatID    int64  `json:"chat_id"`
	MessageID string `json:"message_id"`
}

func (r MessageRef) IsZero() bool {
	return r.ChatID == 0 && r.MessageID == ""
}

// Button unique identifiers. The handler registers one callback endpoint per
// unique; Data carries the typed payload (report ID, link number).
const (
	BtnAcceptReport = "rpt_accept"
	BtnRejectReport = "rpt_reject"
	BtnDeleteLink   = "lnk_del"
)

type Button struct {
	Label  string
	Unique string
	Data   string
}

// Outgoing is a platform-neutral message: markdown text plus optional inline
// keyboard rows.
type Outgoing struct {
	Text    string
	Buttons [][]Button
}

type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
	StatusUnknown       MemberStatus = "unknown"
)

// InGroup reports whether the status grants at least member standing.
func (s MemberStatus) InGroup() bool {
	switch s {
	case StatusCreator, StatusAdministrator, StatusMember, StatusRestricted:
		return true
	}
	return false
}

func (s MemberStatus) CanRestrict() bool {
	return s == StatusCreator || s == StatusAdministrator
}

// API is the minimal chat-platform surface the moderation engine consumes.
// Implementations must bound every call; the telebot adapter relies on the
// HTTP client timeout configured on the bot.
type API interface {
	Send(ctx context.Context, chatID int64, msg Outgoing) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, msg Outgoing) error
	Delete(ctx context.Context, ref MessageRef) error
	MemberStatus(ctx context.Context, chatID, userID int64) (MemberStatus, error)
	BotStatus(ctx context.Context, chatID int64) (MemberStatus, error)
	Restrict(ctx context.Context, chatID, userID int64, until time.Time) error
}
