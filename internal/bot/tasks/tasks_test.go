package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedice/onedicebot/internal/config"
)

type fakeBotInfo struct {
	user *models.User
	err  error
}

func (f fakeBotInfo) GetMe(ctx context.Context) (*models.User, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("health check must set a deadline")
	}
	return f.user, f.err
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	tasks := RegisterAllTasks(TaskDeps{})
	require.Len(t, tasks, 1)
	assert.Contains(t, tasks, config.HealthCheckTask)
}

func TestHealthCheckTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    BotInfoFetcher
		wantErr bool
	}{
		{name: "reachable", info: fakeBotInfo{user: &models.User{ID: 1, Username: "OneDiceBot"}}},
		{name: "unauthorized", info: fakeBotInfo{err: errors.New("Unauthorized")}, wantErr: true},
		{name: "no client", info: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task := RegisterAllTasks(TaskDeps{BotInfo: tt.info})[config.HealthCheckTask]
			err := task(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
