package handler

import (
	"context"

	"auction_client/internal/domain/value"
	"auction_client/internal/render"
	"auction_client/internal/worker"
)

// Controller то, чем бот управляет в клиенте: действия, кадры экранов и
// опрос сервера.
type Controller interface {
	Perform(ctx context.Context, action value.Action, params worker.ActionParams) error
	Frame(screen value.Screen) (render.Frame, error)

	Start(ctx context.Context) error
	Stop()
	IsRunning() bool

	Screens() []value.Screen
	AddScreen(screen value.Screen)
	RemoveScreen(screen value.Screen)
}

type Handler struct {
	ctrl Controller
	// base контекст для опроса, запущенного командой: опрос переживает
	// обработку одного сообщения.
	base context.Context
}

func New(base context.Context, ctrl Controller) *Handler {
	return &Handler{
		ctrl: ctrl,
		base: context.WithoutCancel(base),
	}
}
