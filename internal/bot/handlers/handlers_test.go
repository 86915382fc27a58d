package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedice/onedicebot/internal/bot/handlers"
	"github.com/onedice/onedicebot/internal/errs"
	"github.com/onedice/onedicebot/internal/reply"
)

type sentReply struct {
	chatID  int64
	payload reply.Payload
}

// fakeSender records replies and fails for the chat IDs in failFor.
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentReply
	failFor map[int64]error
}

func (s *fakeSender) SendReply(_ context.Context, chatID int64, payload reply.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentReply{chatID: chatID, payload: payload})
	if err, ok := s.failFor[chatID]; ok {
		return errs.NewDeliveryError(chatID, "failed to send message", err)
	}
	return nil
}

func (s *fakeSender) calls() []sentReply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentReply(nil), s.sent...)
}

func newDispatcher(t *testing.T, sender handlers.Sender, log *slog.Logger) *handlers.Dispatcher {
	t.Helper()

	composer, err := reply.NewComposer(reply.Options{
		Locale: "ru",
		Links: reply.Links{
			App:     "https://onedice.ru/",
			Channel: "https://t.me/onedices",
			Chat:    "https://t.me/myonedice",
		},
	})
	require.NoError(t, err)

	deps := handlers.HandlerDeps{
		Logger:           log,
		Composer:         composer,
		Sender:           sender,
		StartDescription: "Open OneDice",
	}
	return handlers.NewDispatcher(log, "OneDiceBot", handlers.RegisterAllCommands(deps))
}

func commandUpdate(id, chatID int64, firstName, text string) *models.Update {
	msg := &models.Message{
		ID:   int(id),
		Chat: models.Chat{ID: chatID, Type: "private"},
		Text: text,
	}
	if firstName != "-" {
		msg.From = &models.User{ID: chatID, FirstName: firstName}
	}
	return &models.Update{ID: id, Message: msg}
}

func TestEventFromUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		update *models.Update
		want   handlers.Event
		ok     bool
	}{
		{
			name:   "plain start",
			update: commandUpdate(1, 10, "Alex", "/start"),
			want:   handlers.Event{UpdateID: 1, ChatID: 10, SenderName: "Alex", Command: "start"},
			ok:     true,
		},
		{
			name:   "start with mention and deep link",
			update: commandUpdate(2, 11, "Alex", "/start@OneDiceBot ref42"),
			want:   handlers.Event{UpdateID: 2, ChatID: 11, SenderName: "Alex", Command: "start", Mention: "OneDiceBot", Args: "ref42"},
			ok:     true,
		},
		{
			name:   "command followed by newline",
			update: commandUpdate(3, 12, "Alex", "/help\nplease"),
			want:   handlers.Event{UpdateID: 3, ChatID: 12, SenderName: "Alex", Command: "help", Args: "please"},
			ok:     true,
		},
		{
			name:   "no sender",
			update: commandUpdate(4, 13, "-", "/start"),
			want:   handlers.Event{UpdateID: 4, ChatID: 13, Command: "start"},
			ok:     true,
		},
		{name: "plain text", update: commandUpdate(5, 14, "Alex", "hello /start"), ok: false},
		{name: "lone slash", update: commandUpdate(6, 15, "Alex", "/"), ok: false},
		{name: "no message", update: &models.Update{ID: 7}, ok: false},
		{name: "nil update", update: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := handlers.EventFromUpdate(tt.update)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatchStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		event    handlers.Event
		wantName string
	}{
		{name: "named sender", event: handlers.Event{ChatID: 1, SenderName: "Alex", Command: "start"}, wantName: "Alex"},
		{name: "absent name", event: handlers.Event{ChatID: 2, Command: "start"}, wantName: "Игрок"},
		{name: "own mention", event: handlers.Event{ChatID: 3, SenderName: "Alex", Command: "start", Mention: "onedicebot"}, wantName: "Alex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sender := &fakeSender{}
			d := newDispatcher(t, sender, nil)

			handled, err := d.Dispatch(context.Background(), tt.event)
			require.NoError(t, err)
			assert.True(t, handled)

			calls := sender.calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.event.ChatID, calls[0].chatID)
			assert.False(t, calls[0].payload.IsZero())
			assert.Contains(t, calls[0].payload.Text(), tt.wantName)

			rows := calls[0].payload.Rows()
			require.Len(t, rows, 3)
			assert.Equal(t, "https://onedice.ru/", rows[0][0].URL)
			assert.Equal(t, "https://t.me/onedices", rows[1][0].URL)
			assert.Equal(t, "https://t.me/myonedice", rows[2][0].URL)
		})
	}
}

func TestDispatchIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event handlers.Event
	}{
		{name: "help", event: handlers.Event{ChatID: 1, SenderName: "Alex", Command: "help"}},
		{name: "case differs", event: handlers.Event{ChatID: 1, SenderName: "Alex", Command: "Start"}},
		{name: "other bot", event: handlers.Event{ChatID: 1, SenderName: "Alex", Command: "start", Mention: "OtherBot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sender := &fakeSender{}
			d := newDispatcher(t, sender, nil)

			handled, err := d.Dispatch(context.Background(), tt.event)
			require.NoError(t, err)
			assert.False(t, handled)
			assert.Empty(t, sender.calls())
		})
	}
}

func TestDispatchSendFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failFor: map[int64]error{1: errors.New("Forbidden: bot was blocked by the user")}}
	d := newDispatcher(t, sender, nil)

	handled, err := d.Dispatch(context.Background(), handlers.Event{ChatID: 1, Command: "start"})
	assert.True(t, handled)
	require.Error(t, err)
	assert.Equal(t, errs.CodeDelivery, errs.Code(err))

	var deliveryErr *errs.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.EqualValues(t, 1, deliveryErr.ChatID)
}

func TestDispatchRecoversPanic(t *testing.T) {
	t.Parallel()

	d := handlers.NewDispatcher(nil, "", map[string]handlers.RegisteredCommand{
		"/start": {
			Command: "start",
			Handler: func(context.Context, handlers.Event) error { panic("boom") },
		},
	})

	handled, err := d.Dispatch(context.Background(), handlers.Event{ChatID: 1, Command: "start"})
	assert.True(t, handled)
	require.Error(t, err)
	assert.Equal(t, errs.CodeHandler, errs.Code(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestHandleUpdateIsolatesFailures(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sender := &fakeSender{failFor: map[int64]error{100: errors.New("connection reset by peer")}}
	d := newDispatcher(t, sender, log)
	ctx := context.Background()

	d.HandleUpdate(ctx, nil, commandUpdate(1, 100, "Alex", "/start"))
	d.HandleUpdate(ctx, nil, commandUpdate(2, 200, "Alex", "/start"))
	d.HandleUpdate(ctx, nil, commandUpdate(3, 300, "Alex", "/help"))
	d.HandleUpdate(ctx, nil, commandUpdate(4, 400, "Alex", "just text"))

	calls := sender.calls()
	require.Len(t, calls, 2)
	assert.EqualValues(t, 100, calls[0].chatID)
	assert.EqualValues(t, 200, calls[1].chatID)

	out := logs.String()
	assert.Contains(t, out, "Command handling failed")
	assert.Contains(t, out, "chat_id=100")
	assert.Contains(t, out, "error_code=DELIVERY")
	assert.Equal(t, 1, strings.Count(out, "Command handling failed"))
}

func TestEndToEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		update    *models.Update
		wantSends int
		wantText  string
	}{
		{name: "named start", update: commandUpdate(1, 1, "Alex", "/start"), wantSends: 1, wantText: "Alex"},
		{name: "anonymous start", update: commandUpdate(2, 2, "", "/start"), wantSends: 1, wantText: "Игрок"},
		{name: "help is ignored", update: commandUpdate(3, 3, "Alex", "/help"), wantSends: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sender := &fakeSender{}
			d := newDispatcher(t, sender, nil)

			d.HandleUpdate(context.Background(), nil, tt.update)

			calls := sender.calls()
			require.Len(t, calls, tt.wantSends)
			if tt.wantSends == 0 {
				return
			}
			assert.Contains(t, calls[0].payload.Text(), tt.wantText)
			assert.Len(t, calls[0].payload.Rows(), 3)
		})
	}
}

func TestRegisterAllCommands(t *testing.T) {
	t.Parallel()

	cmds := handlers.RegisterAllCommands(handlers.HandlerDeps{StartDescription: "Open OneDice"})
	require.Len(t, cmds, 1)

	start, ok := cmds["/start"]
	require.True(t, ok)
	assert.Equal(t, "start", start.Command)
	assert.Equal(t, "Open OneDice", start.Description)
	assert.NotNil(t, start.Handler)
}
