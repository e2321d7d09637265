package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/saulo-duarte/btcportal/internal/config"
)

var ErrPlayerNotFound = errors.New("quiz player not found")

// PlayerLocator resolves the quiz player of the page bound to the request.
type PlayerLocator interface {
	PlayerFor(ctx context.Context) (*Player, error)
}

type Handler struct {
	service ResultService
	players PlayerLocator
}

func NewHandler(s ResultService, players PlayerLocator) *Handler {
	return &Handler{service: s, players: players}
}

type answerRequest struct {
	Option *int `json:"option"`
}

type answerResponse struct {
	Evaluation Evaluation `json:"evaluation"`
	Status     Status     `json:"status"`
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, player.Status())
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	player, ok := h.player(w, r)
	if !ok {
		return
	}

	player.Engine.Start()
	config.WithContext(r.Context()).Info("Quiz restarted")
	config.JSON(w, http.StatusOK, player.Status())
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	player, ok := h.player(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Option == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eval, err := player.Engine.SubmitAnswer(*req.Option)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSelection):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrTransitionPending), errors.Is(err, ErrFinished):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.WithError(err).Error("Failed to submit answer")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, answerResponse{Evaluation: eval, Status: player.Status()})
}

func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	player, ok := h.player(w, r)
	if !ok {
		return
	}

	// Upgrade has already answered the client when it fails.
	if err := player.Hub.Serve(w, r); err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
	}
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	limit := DefaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.service.TopResults(r.Context(), limit)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []*Result{}
	}
	config.JSON(w, http.StatusOK, results)
}

func (h *Handler) player(w http.ResponseWriter, r *http.Request) (*Player, bool) {
	player, err := h.players.PlayerFor(r.Context())
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			http.Error(w, "page not found", http.StatusNotFound)
			return nil, false
		}
		config.WithContext(r.Context()).WithError(err).Warn("Failed to resolve quiz player")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return player, true
}
