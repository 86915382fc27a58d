package handlers

import (
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"
)

// Event is one inbound command invocation.
type Event struct {
	UpdateID   int64
	ChatID     int64
	SenderName string
	Command    string
	Mention    string
	Args       string
}

// EventFromUpdate extracts a command event from a Telegram update. It returns
// false for updates that carry no message or whose text is not a command.
//
// "/start@OneDiceBot ref42" yields Command "start", Mention "OneDiceBot" and
// Args "ref42".
func EventFromUpdate(update *models.Update) (Event, bool) {
	if update == nil || update.Message == nil {
		return Event{}, false
	}
	msg := update.Message

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return Event{}, false
	}

	head, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, args = text[:i], text[i:]
	}
	command, mention, _ := strings.Cut(strings.TrimPrefix(head, "/"), "@")
	if command == "" {
		return Event{}, false
	}

	ev := Event{
		UpdateID: update.ID,
		ChatID:   msg.Chat.ID,
		Command:  command,
		Mention:  mention,
		Args:     strings.TrimSpace(args),
	}
	if msg.From != nil {
		ev.SenderName = msg.From.FirstName
	}

	return ev, true
}
