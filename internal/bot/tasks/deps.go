// Package tasks implements scheduled tasks for the OneDice bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot/models"
)

// BotInfoFetcher is the part of the Telegram client used by the health check.
// *bot.Bot satisfies it.
type BotInfoFetcher interface {
	GetMe(ctx context.Context) (*models.User, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	BotInfo BotInfoFetcher
}
