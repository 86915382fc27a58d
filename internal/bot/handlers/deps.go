// Package handlers contains the Telegram command handlers, the dispatcher
// that routes inbound commands to them, and their registration logic.
package handlers

import (
	"context"
	"log/slog"

	"github.com/onedice/onedicebot/internal/reply"
)

// Sender delivers a composed reply to a chat.
type Sender interface {
	SendReply(ctx context.Context, chatID int64, payload reply.Payload) error
}

// HandlerDeps provides dependencies for command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Composer *reply.Composer
	Sender   Sender
	// StartDescription is the /start description published to Telegram.
	StartDescription string
}
