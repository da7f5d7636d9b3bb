package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"auction_client/internal/config"
	"auction_client/internal/transport/bot/handler"
	"auction_client/pkg/contextx"
	"auction_client/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollingTimeout = 60

// Bot принимает команды управления клиентом из чата Telegram.
type Bot struct {
	bot     *telego.Bot
	chatID  int64
	handler *handler.Handler
}

// New создает новый экземпляр бота
func New(ctx context.Context, cfg config.Bot, ctrl handler.Controller) (*Bot, error) {
	bot, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		bot:     bot,
		chatID:  cfg.ChatID,
		handler: handler.New(ctx, ctrl),
	}, nil
}

// Run получает обновления через long polling, пока жив контекст.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("failed to create bot handler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.chatID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("failed to start bot handler", logx.Error(err))
		}
	}()

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", logx.Error(err))
	}

	return ctx.Err()
}
