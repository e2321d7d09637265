package portal

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/btcportal/internal/auth"
	"github.com/saulo-duarte/btcportal/internal/config"
)

type Handler struct {
	store    *Store
	tokenTTL time.Duration
}

func NewHandler(store *Store, tokenTTL time.Duration) *Handler {
	return &Handler{store: store, tokenTTL: tokenTTL}
}

type createPageResponse struct {
	Token string   `json:"token"`
	Page  PageView `json:"page"`
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	page := h.store.Create(r.Context())

	token, err := auth.GenerateJWT(page.ID.String(), h.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to sign page token")
		_ = h.store.Delete(page.ID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetTokenCookie(w, token, int(h.tokenTTL.Seconds()))
	log.WithField("page_id", page.ID.String()).Info("Page created")
	config.JSON(w, http.StatusCreated, createPageResponse{Token: token, Page: page.View()})
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, page.View())
}

func (h *Handler) ShowSection(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}

	section, err := ParseSection(chi.URLParam(r, "section"))
	if err == nil {
		err = page.Show(r.Context(), section)
	}
	if err != nil {
		if errors.Is(err, ErrUnknownSection) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to show section")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, page.View())
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(page.ID); err != nil && !errors.Is(err, ErrPageNotFound) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	auth.ClearTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) (*Page, bool) {
	page, err := h.store.PageFor(r.Context())
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return nil, false
		}
		config.WithContext(r.Context()).WithError(err).Warn("Failed to resolve page")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return page, true
}
