package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/onedice/onedicebot/internal/errs"
	"github.com/onedice/onedicebot/internal/logger"
	"github.com/onedice/onedicebot/internal/reply"
)

// MessageSender is the part of the Telegram client used to send messages.
// *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Gateway delivers composed replies through the Telegram client.
type Gateway struct {
	client MessageSender
	logger *slog.Logger
}

// NewGateway creates a gateway over client.
func NewGateway(client MessageSender, log *slog.Logger) *Gateway {
	if log == nil {
		log = logger.Discard()
	}
	return &Gateway{
		client: client,
		logger: log.With("component", "send_gateway"),
	}
}

// SendReply sends payload to chatID as a text message with an inline
// keyboard of URL buttons. Transport failures are returned as
// errs.DeliveryError and left to the caller to log.
func (g *Gateway) SendReply(ctx context.Context, chatID int64, payload reply.Payload) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   payload.Text(),
	}
	if markup := InlineKeyboard(payload.Rows()); markup != nil {
		params.ReplyMarkup = markup
	}

	msg, err := g.client.SendMessage(ctx, params)
	if err != nil {
		return errs.NewDeliveryError(chatID, "failed to send message", err)
	}

	if msg != nil {
		g.logger.DebugContext(ctx, "Reply sent", "chat_id", chatID, "message_id", msg.ID)
	}
	return nil
}

// InlineKeyboard maps action rows to an inline keyboard of URL buttons. It
// returns nil when there are no rows.
func InlineKeyboard(rows [][]reply.Action) *models.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, action := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: action.Label, URL: action.URL})
		}
		keyboard = append(keyboard, buttons)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
