package handler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/render"
	"auction_client/internal/worker"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	auction, _ := h.auctionView()

	return h.sendHTML(ctx, msg.Chat.ID, statusText(h.ctrl.IsRunning(), h.ctrl.Screens(), auction))
}

func (h *Handler) OnAuction(ctx *th.Context, msg telego.Message) error {
	auction, err := h.auctionView()
	if err != nil {
		return h.send(ctx, msg.Chat.ID, RenderFailed)
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      tu.ID(msg.Chat.ID),
		Text:        auctionText(auction),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: auctionKeyboard(auction),
	})

	return err
}

func (h *Handler) OnGame(ctx *th.Context, msg telego.Message) error {
	frame, err := h.ctrl.Frame(value.ScreenGame)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, RenderFailed)
	}

	game, ok := frame.Model.(render.GameView)
	if !ok {
		return h.send(ctx, msg.Chat.ID, RenderFailed)
	}

	return h.sendHTML(ctx, msg.Chat.ID, gameText(game))
}

// OnStatistics обновляет статистику с сервера и показывает её.
func (h *Handler) OnStatistics(ctx *th.Context, msg telego.Message) error {
	if err := h.ctrl.Perform(ctx, value.ActionRefresh, worker.ActionParams{}); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(ActionFailed, domain.UserMessage(err)))
	}

	frame, err := h.ctrl.Frame(value.ScreenStatistics)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, RenderFailed)
	}

	stats, ok := frame.Model.(render.StatisticsView)
	if !ok {
		return h.send(ctx, msg.Chat.ID, RenderFailed)
	}

	return h.sendHTML(ctx, msg.Chat.ID, statisticsText(stats))
}

// action возвращает обработчик команды без аргументов.
func (h *Handler) action(action value.Action) th.MessageHandler {
	return func(ctx *th.Context, msg telego.Message) error {
		return h.perform(ctx, msg.Chat.ID, action, worker.ActionParams{})
	}
}

func (h *Handler) OnBuyProduct(ctx *th.Context, msg telego.Message) error {
	if len(commandArgs(msg.Text)) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, BuyProductUsage)
	}

	id, ok := parseProductID(msg.Text)
	if !ok {
		return h.send(ctx, msg.Chat.ID, InvalidID)
	}

	return h.perform(ctx, msg.Chat.ID, value.ActionBuyProduct, worker.ActionParams{ProductID: id})
}

func (h *Handler) OnSetName(ctx *th.Context, msg telego.Message) error {
	name := strings.Join(commandArgs(msg.Text), " ")
	if name == "" {
		return h.sendHTML(ctx, msg.Chat.ID, SetNameUsage)
	}

	return h.perform(ctx, msg.Chat.ID, value.ActionSetName, worker.ActionParams{Name: name})
}

func (h *Handler) OnStartPoll(ctx *th.Context, msg telego.Message) error {
	if h.ctrl.IsRunning() {
		return h.send(ctx, msg.Chat.ID, PollAlreadyRunning)
	}

	if err := h.ctrl.Start(h.base); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(PollStartFailed, err))
	}

	return h.send(ctx, msg.Chat.ID, PollStarted)
}

func (h *Handler) OnStopPoll(ctx *th.Context, msg telego.Message) error {
	if !h.ctrl.IsRunning() {
		return h.send(ctx, msg.Chat.ID, PollNotRunning)
	}

	h.ctrl.Stop()

	return h.send(ctx, msg.Chat.ID, PollStopped)
}

func (h *Handler) OnScreens(ctx *th.Context, msg telego.Message) error {
	screens := h.ctrl.Screens()
	if len(screens) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, ScreensEmpty)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 <b>Опрашиваемые экраны (%d):</b>\n\n", len(screens)))

	for i, screen := range screens {
		sb.WriteString(fmt.Sprintf("%d. <code>%s</code>\n", i+1, screen))
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

// OnAddScreen добавляет экран в опрос. Запущенный опрос перезапускается,
// чтобы изменение вступило в силу.
// Использование: /addscreen statistics
func (h *Handler) OnAddScreen(ctx *th.Context, msg telego.Message) error {
	screen, ok, err := h.screenArg(ctx, msg, "/addscreen")
	if !ok {
		return err
	}

	if slices.Contains(h.ctrl.Screens(), screen) {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ScreenExists, screen))
	}

	h.ctrl.AddScreen(screen)
	h.restartPolling()

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ScreenAdded, screen))
}

// OnRemoveScreen убирает экран из опроса.
// Использование: /removescreen statistics
func (h *Handler) OnRemoveScreen(ctx *th.Context, msg telego.Message) error {
	screen, ok, err := h.screenArg(ctx, msg, "/removescreen")
	if !ok {
		return err
	}

	if !slices.Contains(h.ctrl.Screens(), screen) {
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ScreenMissing, screen))
	}

	h.ctrl.RemoveScreen(screen)
	h.restartPolling()

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ScreenRemoved, screen))
}

// OnActionCallback кнопки под сообщением аукциона.
func (h *Handler) OnActionCallback(ctx *th.Context, query telego.CallbackQuery) error {
	name := strings.TrimPrefix(query.Data, callbackActionPrefix)

	answer := tu.CallbackQuery(query.ID)

	if action, err := value.ParseAction(name); err == nil {
		if err = h.ctrl.Perform(ctx, action, worker.ActionParams{}); err != nil {
			answer = answer.WithText(domain.UserMessage(err)).WithShowAlert()
		} else {
			answer = answer.WithText(ActionDone)
		}
	}

	_ = ctx.Bot().AnswerCallbackQuery(ctx, answer)

	if query.Message == nil {
		return nil
	}

	auction, err := h.auctionView()
	if err != nil {
		return nil //nolint:nilerr
	}

	// Telegram отвечает ошибкой, если текст не изменился. Это не ошибка.
	_, _ = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        auctionText(auction),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: auctionKeyboard(auction),
	})

	return nil
}

// Вспомогательные методы

func (h *Handler) perform(ctx *th.Context, chatID int64, action value.Action, params worker.ActionParams) error {
	if err := h.ctrl.Perform(ctx, action, params); err != nil {
		return h.send(ctx, chatID, fmt.Sprintf(ActionFailed, domain.UserMessage(err)))
	}

	return h.send(ctx, chatID, ActionDone)
}

func (h *Handler) auctionView() (render.AuctionView, error) {
	frame, err := h.ctrl.Frame(value.ScreenAuction)
	if err != nil {
		return render.AuctionView{}, err
	}

	auction, ok := frame.Model.(render.AuctionView)
	if !ok {
		return render.AuctionView{}, fmt.Errorf("unexpected auction model %T", frame.Model)
	}

	return auction, nil
}

func (h *Handler) screenArg(ctx *th.Context, msg telego.Message, command string) (value.Screen, bool, error) {
	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return "", false, h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(ScreenUsage, command))
	}

	screen, err := value.ParseScreen(args[0])
	if err != nil {
		return "", false, h.send(ctx, msg.Chat.ID, UnknownScreen)
	}

	return screen, true, nil
}

func (h *Handler) restartPolling() {
	if !h.ctrl.IsRunning() {
		return
	}

	h.ctrl.Stop()
	_ = h.ctrl.Start(h.base)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    tu.ID(chatID),
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(chatID),
		Text:   text,
	})

	return err
}
