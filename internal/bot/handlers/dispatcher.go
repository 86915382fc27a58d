package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/onedice/onedicebot/internal/errs"
	"github.com/onedice/onedicebot/internal/logger"
)

// Dispatcher routes command events to registered handlers. Commands without
// a route are ignored.
type Dispatcher struct {
	logger      *slog.Logger
	botUsername string
	routes      map[string]CommandFunc
}

// NewDispatcher creates a dispatcher over the registered commands.
// botUsername is used to ignore commands addressed to other bots
// ("/start@OtherBot"); an empty username accepts every mention.
func NewDispatcher(log *slog.Logger, botUsername string, commands map[string]RegisteredCommand) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}

	routes := make(map[string]CommandFunc, len(commands))
	for _, cmd := range commands {
		if cmd.Handler == nil {
			log.Warn("Skipping registration for nil handler", "command", cmd.Command)
			continue
		}
		routes[cmd.Command] = cmd.Handler
	}

	return &Dispatcher{
		logger:      log.With("component", "dispatcher"),
		botUsername: botUsername,
		routes:      routes,
	}
}

// Dispatch invokes the handler registered for ev.Command. It reports whether
// a handler ran. A panicking handler is turned into an errs.HandlerError.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (handled bool, err error) {
	if ev.Mention != "" && d.botUsername != "" && !strings.EqualFold(ev.Mention, d.botUsername) {
		d.logger.DebugContext(ctx, "Ignoring command addressed to another bot", "command", ev.Command, "mention", ev.Mention)
		return false, nil
	}

	handler, ok := d.routes[ev.Command]
	if !ok {
		d.logger.DebugContext(ctx, "Ignoring unknown command", "command", ev.Command, "chat_id", ev.ChatID)
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			handled = true
			err = errs.NewHandlerError(ev.Command, "command handler panicked", fmt.Errorf("%v", r))
		}
	}()

	return true, handler(ctx, ev)
}

// HandleUpdate is the bot.HandlerFunc registered on the transport. Errors are
// logged and dropped so the receive loop moves on to the next update.
func (d *Dispatcher) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	ev, ok := EventFromUpdate(update)
	if !ok {
		return
	}

	handled, err := d.Dispatch(ctx, ev)
	if err != nil {
		d.logger.ErrorContext(ctx, "Command handling failed",
			"error", err,
			"error_code", errs.Code(err),
			"command", ev.Command,
			"chat_id", ev.ChatID,
			"update_id", ev.UpdateID)
		return
	}

	if handled {
		d.logger.DebugContext(ctx, "Command handled", "command", ev.Command, "chat_id", ev.ChatID)
	}
}
