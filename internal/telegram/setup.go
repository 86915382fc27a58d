// Package telegram handles the setup of the Telegram client, the
// registration of the command dispatcher and the delivery of replies.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/onedice/onedicebot/internal/bot/handlers"
	"github.com/onedice/onedicebot/internal/logger"
)

// CommandPublisher is the part of the Telegram client used to publish the
// command menu.
type CommandPublisher interface {
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, log *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

// RegisterDispatcher routes every message starting with "/" to handler. The
// handler decides which commands it answers.
func RegisterDispatcher(b *bot.Bot, log *slog.Logger, handler bot.HandlerFunc, mw ...bot.Middleware) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("dispatcher handler cannot be nil")
	}
	if log == nil {
		log = logger.Discard()
	}

	id := b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, handler, mw...)
	log.With("component", "handler_registry").Debug("Registered command dispatcher", "handler_id", id, "middleware_count", len(mw))
	return nil
}

// PublishCommands sets the bot's command menu from the registered commands.
// Commands without a description are not published.
func PublishCommands(ctx context.Context, client CommandPublisher, log *slog.Logger, commands map[string]handlers.RegisteredCommand) error {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "handler_registry")

	botCommands := make([]models.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Description == "" {
			continue
		}
		botCommands = append(botCommands, models.BotCommand{Command: cmd.Command, Description: cmd.Description})
	}
	if len(botCommands) == 0 {
		log.Warn("No command descriptions to publish")
		return nil
	}
	sort.Slice(botCommands, func(i, j int) bool {
		return botCommands[i].Command < botCommands[j].Command
	})

	if _, err := client.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: botCommands}); err != nil {
		return fmt.Errorf("failed to publish bot commands: %w", err)
	}

	log.Info("Published bot commands", "count", len(botCommands))
	return nil
}

func tokenPrefix(token string) string {
	const n = 8
	if len(token) <= n {
		return "..."
	}
	return token[:n] + "..."
}
