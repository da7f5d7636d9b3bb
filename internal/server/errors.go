package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"auction_client/internal/domain"
	"auction_client/pkg/errcodes"
	"auction_client/pkg/httpx/reply"
)

// writeError отвечает доменной ошибкой клиента с подходящим статусом.
// Остальные ошибки уходят в reply.Error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr, ok := domain.AsAppError(err)
	if !ok {
		reply.Error(ctx, w, err)
		return
	}

	reply.ErrorWithStatus(ctx, w, statusFor(appErr), appErr.Code, domain.UserMessage(appErr))
}

func statusFor(appErr *domain.AppError) int {
	switch appErr.Code {
	case errcodes.ControlDisabled, errcodes.ActionInFlight:
		return http.StatusConflict
	case errcodes.UnknownAction, errcodes.InvalidScreen:
		return http.StatusNotFound
	case errcodes.InvalidProduct, errcodes.InvalidName, errcodes.ValidationError:
		return http.StatusBadRequest
	case errcodes.ServerError, errcodes.RenderError:
		return http.StatusBadGateway
	case errcodes.NetworkError:
		var netErr net.Error
		if errors.Is(appErr, context.DeadlineExceeded) || (errors.As(appErr, &netErr) && netErr.Timeout()) {
			return http.StatusGatewayTimeout
		}

		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
