package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"clubmanager/internal/models"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

// respondWithDomainError maps the business error taxonomy to HTTP
// statuses. Capacity and trainer rejections answer with the detail the
// typed error carries, so the client can explain the refusal.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, models.ErrCapacityExceeded):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, models.ErrTrainerAssigned):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, models.ErrInconsistentState):
		respondWithError(w, http.StatusInternalServerError, err.Error(), "Inconsistent data state", err)
	case errors.Is(err, models.ErrTransientStore):
		respondWithError(w, http.StatusServiceUnavailable, "temporary storage failure, retry the request", "Store failure", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", "Unhandled error", err)
	}
}
