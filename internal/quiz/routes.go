package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/btcportal/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/results", h.ListResults)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/", h.GetStatus)
		r.Post("/start", h.Start)
		r.Post("/answers", h.SubmitAnswer)
		r.Get("/ws", h.Stream)
	})
	return r
}
