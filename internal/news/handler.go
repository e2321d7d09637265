package news

import (
	"net/http"

	"github.com/saulo-duarte/btcportal/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.FetchNews(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Failed to fetch news")
		http.Error(w, ErrorText(err), http.StatusBadGateway)
		return
	}
	config.JSON(w, http.StatusOK, items)
}
