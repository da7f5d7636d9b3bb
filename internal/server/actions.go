package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/worker"
	"auction_client/pkg/errcodes"
	"auction_client/pkg/httpx/reply"
	"auction_client/pkg/httpx/req"
	"auction_client/pkg/rest"
)

type actionPerformer interface {
	Perform(ctx context.Context, action value.Action, params worker.ActionParams) error
}

type ActionServer struct {
	performer actionPerformer
}

func NewActionServer(performer actionPerformer) ActionServer {
	return ActionServer{
		performer: performer,
	}
}

func (s ActionServer) postV1Action(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	action, err := value.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		return domain.WrapError(err, errcodes.UnknownAction, "Неизвестное действие")
	}

	var request rest.ActionRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err = s.performer.Perform(ctx, action, newActionParams(request)); err != nil {
		return fmt.Errorf("performer.Perform: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ActionResponse{
		Action: action.String(),
		Screen: action.Screen().String(),
	})

	return nil
}
