package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

type OutfitsHandler struct {
	broker *broker.Broker
}

func NewOutfitsHandler(b *broker.Broker) *OutfitsHandler {
	return &OutfitsHandler{broker: b}
}

type CreateOutfitRequest struct {
	Label string `json:"label"`
}

// StatRequest carries a weight as a number or a level name such as "wanted".
type StatRequest struct {
	Stat   string       `json:"stat,omitempty"`
	Weight outfit.Level `json:"weight"`
}

type StatPriorityResponse struct {
	Stat       string            `json:"stat"`
	Weight     float64           `json:"weight"`
	Assignment outfit.Assignment `json:"assignment"`
}

func statResponse(sp *outfit.StatPriority) StatPriorityResponse {
	return StatPriorityResponse{Stat: sp.Stat().Name, Weight: sp.Weight(), Assignment: sp.Assignment()}
}

func (h *OutfitsHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.broker.Outfits().All()
	out := make([]outfit.Snapshot, 0, len(all))
	for _, o := range all {
		out = append(out, o.Snapshot())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OutfitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.broker.GetOutfit(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (h *OutfitsHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	events, err := h.broker.Events(r.Context(), id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *OutfitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "label required")
		return
	}
	o := h.broker.CreateOutfit(r.Context(), req.Label, actorFrom(r))
	writeJSON(w, http.StatusCreated, o.Snapshot())
}

func (h *OutfitsHandler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	req := outfit.Legacy{Filter: outfit.DefaultFilter()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID <= 0 || req.Label == "" {
		writeError(w, http.StatusBadRequest, "id and label required")
		return
	}
	o, err := h.broker.ImportLegacy(r.Context(), req, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o.Snapshot())
}

func (h *OutfitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	var patch broker.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Label != nil && *patch.Label == "" {
		writeError(w, http.StatusBadRequest, "label cannot be empty")
		return
	}
	o, err := h.broker.UpdateOutfit(r.Context(), id, patch, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (h *OutfitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	if err := h.broker.DeleteOutfit(r.Context(), id, actorFrom(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OutfitsHandler) Copy(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	src, ok := outfitID(w, r, "src")
	if !ok {
		return
	}
	o, err := h.broker.CopyOutfit(r.Context(), id, src, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (h *OutfitsHandler) ResetTemperatures(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.broker.ResetTemperatures(r.Context(), id, actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o.Snapshot())
}

func (h *OutfitsHandler) AddStat(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	var req StatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Stat == "" {
		writeError(w, http.StatusBadRequest, "stat required")
		return
	}
	o, err := h.broker.AddStat(r.Context(), id, req.Stat, float64(req.Weight), actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o.Snapshot())
}

func (h *OutfitsHandler) SetStatWeight(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	var req StatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sp, err := h.broker.SetStatWeight(r.Context(), id, chi.URLParam(r, "stat"), float64(req.Weight), actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statResponse(sp))
}

func (h *OutfitsHandler) RemoveStat(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	if err := h.broker.RemoveStat(r.Context(), id, chi.URLParam(r, "stat"), actorFrom(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OutfitsHandler) ResetStat(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	sp, err := h.broker.ResetStat(r.Context(), id, chi.URLParam(r, "stat"), actorFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statResponse(sp))
}
