package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/pkg/errcodes"
	"auction_client/pkg/httpx/reply"
)

type frameSource interface {
	Frame(screen value.Screen) (render.Frame, error)
}

type elementSource interface {
	Elements(screen value.Screen) []render.Element
}

type notificationSource interface {
	Active() []notifier.Notification
}

// ViewServer отдаёт текущее состояние экранов. Сервер аукциона при этом не
// опрашивается.
type ViewServer struct {
	frames        frameSource
	elements      elementSource
	notifications notificationSource
}

func NewViewServer(
	frames frameSource,
	elements elementSource,
	notifications notificationSource,
) ViewServer {
	return ViewServer{
		frames:        frames,
		elements:      elements,
		notifications: notifications,
	}
}

func (s ViewServer) getV1View(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	screen, err := parseScreen(r)
	if err != nil {
		return err
	}

	frame, err := s.frames.Frame(screen)
	if err != nil {
		return fmt.Errorf("frames.Frame: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTView(frame))

	return nil
}

// getV1Elements отдаёт элементы в том виде, в котором их видел последний
// отрисованный кадр.
func (s ViewServer) getV1Elements(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	screen, err := parseScreen(r)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, s.elements.Elements(screen))

	return nil
}

func (s ViewServer) getV1Notifications(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTNotifications(s.notifications.Active()))

	return nil
}

func parseScreen(r *http.Request) (value.Screen, error) {
	screen, err := value.ParseScreen(chi.URLParam(r, "screen"))
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidScreen, "Неизвестный экран")
	}

	return screen, nil
}
