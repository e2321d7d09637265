package chart

import (
	"net/http"

	"github.com/saulo-duarte/btcportal/internal/config"
)

type Handler struct {
	options Options
}

func NewHandler(opts Options) *Handler {
	return &Handler{options: opts.withDefaults()}
}

type widgetResponse struct {
	Widget
	HTML string `json:"html"`
}

func (h *Handler) GetWidget(w http.ResponseWriter, r *http.Request) {
	widget := Placeholder(h.options).Load()

	snippet, err := widget.Embed()
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to render chart widget")
		http.Error(w, "Failed to render chart widget", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, widgetResponse{Widget: widget, HTML: snippet})
}
