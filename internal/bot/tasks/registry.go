package tasks

import (
	"context"

	"github.com/onedice/onedicebot/internal/config"
	"github.com/onedice/onedicebot/internal/logger"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks initializes and returns a map of all registered scheduled tasks.
// The keys match the task names under scheduler.tasks in the configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	tasks := make(map[string]ScheduledTaskFunc)

	tasks[config.HealthCheckTask] = newHealthCheckTask(deps)

	deps.Logger.Debug("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
