package handlers

import (
	"context"
	"fmt"

	"github.com/onedice/onedicebot/internal/logger"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) CommandFunc {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	return startHandler{deps}.Handle
}

// startHandler answers /start with the welcome message.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, ev Event) error {
	log := h.deps.Logger.With("handler", "start")

	log.InfoContext(ctx, "Handling /start command", "chat_id", ev.ChatID, "has_name", ev.SenderName != "")

	payload := h.deps.Composer.Compose(ev.SenderName)
	if err := h.deps.Sender.SendReply(ctx, ev.ChatID, payload); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	log.DebugContext(ctx, "Successfully sent welcome message", "chat_id", ev.ChatID)
	return nil
}
