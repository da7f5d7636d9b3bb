package server

import (
	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/internal/worker"
	"auction_client/pkg/rest"
)

func newRESTView(frame render.Frame) rest.View {
	return rest.View{
		Screen:   frame.Screen.String(),
		Model:    frame.Model,
		Elements: frame.Elements,
	}
}

func newRESTNotifications(active []notifier.Notification) rest.Notifications {
	return rest.Notifications{
		Items: active,
	}
}

func newActionParams(request rest.ActionRequest) worker.ActionParams {
	return worker.ActionParams{
		ProductID: request.ProductID,
		Name:      request.Name,
	}
}
