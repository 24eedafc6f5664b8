package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps broker and outfit errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, outfit.ErrNotFound), errors.Is(err, outfit.ErrNotAssigned):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, outfit.ErrUnknownStat), errors.Is(err, broker.ErrNoAgent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, outfit.ErrNotManual), errors.Is(err, outfit.ErrNotOverride),
		errors.Is(err, outfit.ErrIndividual), errors.Is(err, broker.ErrAlreadyAssigned),
		errors.Is(err, broker.ErrOutfitExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func outfitID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outfit id")
		return 0, false
	}
	return id, true
}
