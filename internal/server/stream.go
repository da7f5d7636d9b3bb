package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"auction_client/internal/domain/value"
	"auction_client/pkg/logx"
)

// StreamServer подключает websocket-клиентов к Hub. Новый клиент сначала
// получает текущие кадры всех опрашиваемых экранов.
type StreamServer struct {
	hub     *Hub
	frames  frameSource
	screens func() []value.Screen
}

func NewStreamServer(hub *Hub, frames frameSource, screens func() []value.Screen) StreamServer {
	return StreamServer{
		hub:     hub,
		frames:  frames,
		screens: screens,
	}
}

func (s StreamServer) getV1Stream(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var initial [][]byte

	for _, screen := range s.screens() {
		frame, err := s.frames.Frame(screen)
		if err != nil {
			logger(ctx).Warn("initial frame skipped", slog.String(logx.FieldScreen, screen.String()), logx.Error(err))
			continue
		}

		message, err := encodeEvent(EventFrame, frame)
		if err != nil {
			return fmt.Errorf("encodeEvent: %w", err)
		}

		initial = append(initial, message)
	}

	// Upgrade сам отвечает клиенту при ошибке рукопожатия.
	if err := s.hub.Upgrade(w, r, initial...); err != nil {
		logger(ctx).Warn("hub.Upgrade", logx.Error(err))
	}

	return nil
}
