package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes регистрирует маршруты. logging применяется ко всем
// маршрутам, кроме websocket: поток событий не пишется в лог.
func (s Server) RegisterRoutes(r chi.Router, logging ...func(http.Handler) http.Handler) {
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(logging...)

			r.Route("/views/{screen}", func(r chi.Router) {
				r.Get("/", handler(s.getV1View))
				r.Get("/elements", handler(s.getV1Elements))
			})
			r.Get("/notifications", handler(s.getV1Notifications))
			r.Post("/actions/{action}", handler(s.postV1Action))
		})

		r.Get("/ws", handler(s.getV1Stream))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(r.Context(), w, err)
		}
	}
}
