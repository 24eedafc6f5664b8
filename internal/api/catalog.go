package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
)

type CatalogHandler struct {
	broker *broker.Broker
}

func NewCatalogHandler(b *broker.Broker) *CatalogHandler {
	return &CatalogHandler{broker: b}
}

type StatInfo struct {
	Name     string        `json:"name"`
	Label    string        `json:"label"`
	Category defs.Category `json:"category"`
}

func statInfos(stats []*defs.Stat) []StatInfo {
	out := make([]StatInfo, 0, len(stats))
	for _, s := range stats {
		out = append(out, StatInfo{Name: s.Name, Label: s.Label, Category: s.Category})
	}
	return out
}

// AvailableStats lists every stat an outfit may prioritize, by label.
func (h *CatalogHandler) AvailableStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statInfos(h.broker.Stats().AvailableStats()))
}

// UnassignedStats lists the stats the outfit does not prioritize yet.
func (h *CatalogHandler) UnassignedStats(w http.ResponseWriter, r *http.Request) {
	id, ok := outfitID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.broker.GetOutfit(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statInfos(o.UnassignedStats(h.broker.Stats())))
}

func (h *CatalogHandler) WorkTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.broker.Aggregator().Snapshots())
}
