package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
	"github.com/MikeSquared-Agency/Wardrobe/internal/hermes"
)

type ScoringHandler struct {
	broker *broker.Broker
}

func NewScoringHandler(b *broker.Broker) *ScoringHandler {
	return &ScoringHandler{broker: b}
}

func (h *ScoringHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req broker.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.broker.Score(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoringHandler) Agents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.broker.Agents(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *ScoringHandler) Priorities(w http.ResponseWriter, r *http.Request) {
	derived, err := h.broker.DerivePriorities(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, derived)
}

// Tick is the HTTP equivalent of a colony tick event on the bus.
func (h *ScoringHandler) Tick(w http.ResponseWriter, r *http.Request) {
	var evt hermes.TickEvent
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.broker.Advance(evt.Tick, evt.SelectedAgent)
	w.WriteHeader(http.StatusNoContent)
}
