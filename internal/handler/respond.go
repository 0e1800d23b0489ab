package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/timer"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain errors to status codes. A missing id
// means the caller referenced an entity outside the stored snapshot; it
// is logged and reported as 404, not as a server failure.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, timer.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		logger.Warn("Referenced entity not found", zap.Error(err))
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("Operation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
