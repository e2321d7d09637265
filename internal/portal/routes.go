package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/btcportal/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreatePage)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/current", h.GetPage)
		r.Delete("/current", h.DeletePage)
		r.Post("/current/sections/{section}", h.ShowSection)
	})
	return r
}
