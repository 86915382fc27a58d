package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const healthCheckTimeout = 10 * time.Second

// newHealthCheckTask creates the scheduled task that verifies the bot token
// and the Bot API are still reachable.
func newHealthCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "health_check")

	return func(ctx context.Context) error {
		if deps.BotInfo == nil {
			return errors.New("health check has no telegram client")
		}

		startTime := time.Now()
		timeoutCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()

		me, err := deps.BotInfo.GetMe(timeoutCtx)
		duration := time.Since(startTime)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.WarnContext(ctx, "Telegram health check timed out", "duration", duration)
			}
			return fmt.Errorf("telegram health check failed: %w", err)
		}

		log.InfoContext(ctx, "Telegram health check passed",
			"bot_id", me.ID,
			"bot_username", me.Username,
			"duration", duration)
		return nil
	}
}
