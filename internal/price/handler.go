package price

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

func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.FetchPrice(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Failed to fetch price")
		http.Error(w, ErrorText, http.StatusBadGateway)
		return
	}
	config.JSON(w, http.StatusOK, quote)
}
