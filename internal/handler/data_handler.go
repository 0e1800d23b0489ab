package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/service"
)

// DataHandler serves the whole-snapshot persistence endpoint: GET
// returns the full state, POST replaces it wholesale. No partial
// updates.
type DataHandler struct {
	service *service.CaseService
	logger  *zap.Logger
}

func NewDataHandler(service *service.CaseService, logger *zap.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot()
	if err != nil {
		h.logger.Error("Failed to load snapshot", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to read database")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *DataHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		h.logger.Error("Failed to decode snapshot", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ReplaceSnapshot(snap); err != nil {
		h.logger.Error("Failed to save snapshot", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save database")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
