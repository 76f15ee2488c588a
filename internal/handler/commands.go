package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tb "gopkg.in/telebot.v3"

	"github.com/mdnahidul337/report-support/internal/chat"
	"github.com/mdnahidul337/report-support/internal/messages"
	"github.com/mdnahidul337/report-support/internal/repository"
)

// handleCommand consumes link-registry commands. Returns true when the
// message was a command, whether or not it succeeded.
func (h *Handler) handleCommand(ctx context.Context, c tb.Context) bool {
	fields := strings.Fields(c.Message().Text)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(strings.TrimSuffix(fields[0], "@"+h.bot.Me.Username))
	args := fields[1:]

	switch cmd {
	case "/links":
		h.handleListLinks(ctx, c)
	case "/link":
		h.handleGetLink(ctx, c, args)
	case "/addlink":
		h.handleAddLink(ctx, c, args)
	case "/dellink":
		h.handleDeleteLink(ctx, c, args)
	case "/exportlinks":
		h.handleExportLinks(ctx, c)
	default:
		return false
	}
	return true
}

func (h *Handler) handleListLinks(ctx context.Context, c tb.Context) {
	entries, err := h.svc.ListLinks(ctx)
	if err != nil {
		h.logger.Error("Failed to list links", "error", err)
		return
	}
	if len(entries) == 0 {
		h.reply(c, messages.MsgLinksEmpty)
		return
	}

	var b strings.Builder
	b.WriteString(messages.MsgLinksHeader)
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("\n%d. %s", e.Number, e.URL))
		if e.DateLabel != "" {
			b.WriteString(" — " + e.DateLabel)
		}
	}
	h.reply(c, b.String())
}

func (h *Handler) handleGetLink(ctx context.Context, c tb.Context, args []string) {
	if len(args) != 1 {
		h.reply(c, messages.MsgLinkQueryUsage)
		return
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		h.reply(c, messages.MsgLinkQueryUsage)
		return
	}

	entry, err := h.svc.GetLink(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			h.reply(c, messages.MsgLinkNotFound)
		} else {
			h.logger.Error("Failed to get link", "number", number, "error", err)
		}
		return
	}

	text := fmt.Sprintf("%d. %s", entry.Number, entry.URL)
	if entry.DateLabel != "" {
		text += " — " + entry.DateLabel
	}
	h.reply(c, text)
}

// handleAddLink accepts "/addlink <url> [date]" or
// "/addlink <number> <url> [date]". Admin only.
func (h *Handler) handleAddLink(ctx context.Context, c tb.Context, args []string) {
	if !h.cfg.IsAdmin(c.Sender().ID) {
		return
	}
	if len(args) == 0 {
		h.reply(c, messages.MsgLinkUsage)
		return
	}

	number := 0
	if n, err := strconv.Atoi(args[0]); err == nil {
		number = n
		args = args[1:]
	}
	if len(args) == 0 {
		h.reply(c, messages.MsgLinkUsage)
		return
	}
	url := args[0]
	dateLabel := strings.Join(args[1:], " ")

	entry, err := h.svc.AddLink(ctx, number, url, dateLabel, c.Sender().ID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNumberUsed) {
			h.reply(c, messages.MsgLinkNumberConflict)
		} else {
			h.logger.Error("Failed to add link", "error", err)
		}
		return
	}
	h.reply(c, fmt.Sprintf(messages.MsgLinkAdded, entry.Number))
}

func (h *Handler) handleDeleteLink(ctx context.Context, c tb.Context, args []string) {
	if !h.cfg.IsAdmin(c.Sender().ID) {
		return
	}
	if len(args) != 1 {
		return
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	h.deleteLink(ctx, c, number)
}

func (h *Handler) deleteLink(ctx context.Context, c tb.Context, number int) {
	if err := h.svc.DeleteLink(ctx, number); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			h.reply(c, messages.MsgLinkNotFound)
		} else {
			h.logger.Error("Failed to delete link", "number", number, "error", err)
		}
		return
	}
	h.reply(c, fmt.Sprintf(messages.MsgLinkDeleted, number))
}

// handleExportLinks dumps the registry to the requesting admin privately,
// one delete control per entry.
func (h *Handler) handleExportLinks(ctx context.Context, c tb.Context) {
	if !h.cfg.IsAdmin(c.Sender().ID) {
		return
	}

	entries, err := h.svc.ListLinks(ctx)
	if err != nil {
		h.logger.Error("Failed to export links", "error", err)
		return
	}
	if len(entries) == 0 {
		h.reply(c, messages.MsgLinksEmpty)
		return
	}

	var b strings.Builder
	var buttons [][]chat.Button
	b.WriteString(messages.MsgLinksHeader)
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("\n%d. %s", e.Number, e.URL))
		if e.DateLabel != "" {
			b.WriteString(" — " + e.DateLabel)
		}
		buttons = append(buttons, []chat.Button{{
			Label:  fmt.Sprintf("🗑 Delete #%d", e.Number),
			Unique: chat.BtnDeleteLink,
			Data:   strconv.Itoa(e.Number),
		}})
	}

	if _, err := h.api.Send(ctx, c.Sender().ID, chat.Outgoing{Text: b.String(), Buttons: buttons}); err != nil {
		h.logger.Warn("Failed to send export privately", "admin", c.Sender().ID, "error", err)
	}
}
