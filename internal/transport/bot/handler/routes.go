package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"auction_client/internal/domain/value"
	"auction_client/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, chatID int64) {
	// Команды принимаются только из чата уведомлений
	chat := bh.Group(th.AnyMessage())
	chat.Use(middleware.ChatOnly(chatID))

	chat.HandleMessage(h.OnStart, th.CommandEqual("start"))
	chat.HandleMessage(h.OnStatus, th.CommandEqual("status"))

	// Аукцион
	chat.HandleMessage(h.OnAuction, th.CommandEqual("auction"))
	chat.HandleMessage(h.action(value.ActionBuy), th.CommandEqual("buy"))
	chat.HandleMessage(h.action(value.ActionWait), th.CommandEqual("wait"))
	chat.HandleMessage(h.action(value.ActionResetAuction), th.CommandEqual("resetauction"))

	// Игра
	chat.HandleMessage(h.OnGame, th.CommandEqual("game"))
	chat.HandleMessage(h.action(value.ActionStart), th.CommandEqual("startgame"))
	chat.HandleMessage(h.action(value.ActionNextRound), th.CommandEqual("nextround"))
	chat.HandleMessage(h.action(value.ActionReset), th.CommandEqual("resetgame"))
	chat.HandleMessage(h.OnBuyProduct, th.CommandEqual("buyproduct"))
	chat.HandleMessage(h.OnSetName, th.CommandEqual("setname"))

	chat.HandleMessage(h.OnStatistics, th.CommandEqual("stats"))

	// Опрос
	chat.HandleMessage(h.OnStartPoll, th.CommandEqual("startpoll"))
	chat.HandleMessage(h.OnStopPoll, th.CommandEqual("stoppoll"))
	chat.HandleMessage(h.OnScreens, th.CommandEqual("screens"))
	chat.HandleMessage(h.OnAddScreen, th.CommandEqual("addscreen"))
	chat.HandleMessage(h.OnRemoveScreen, th.CommandEqual("removescreen"))

	callbacks := bh.Group(th.AnyCallbackQuery())
	callbacks.Use(middleware.ChatOnly(chatID))

	callbacks.HandleCallbackQuery(h.OnActionCallback, th.CallbackDataPrefix(callbackActionPrefix))
}
