package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_client/internal/domain/value"
	"auction_client/pkg/logx"
)

const telegramQueueSize = 64

// TelegramBot дублирует уведомления в чат Telegram.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
	queue  chan Notification
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan Notification, telegramQueueSize),
	}, nil
}

// Notify ставит уведомление в очередь отправки. Если очередь заполнена,
// уведомление в чат не попадёт.
func (b *TelegramBot) Notify(ctx context.Context, n Notification) {
	if n.State != StateShown {
		return
	}

	select {
	case b.queue <- n:
	default:
		logger(ctx).Warn("telegram queue is full", slog.String(logx.FieldNotificationID, n.ID))
	}
}

// Run отправляет уведомления из очереди, пока не отменён контекст.
func (b *TelegramBot) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-b.queue:
			if err := b.SendNotification(ctx, n); err != nil {
				logger(ctx).Error("failed to send notification", logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendNotification(ctx context.Context, n Notification) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		severityIcon(n.Severity)+" "+n.Message,
	)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func severityIcon(severity value.Severity) string {
	switch severity {
	case value.SeveritySuccess:
		return "✅"
	case value.SeverityError:
		return "❌"
	default:
		return "ℹ️"
	}
}
