package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/service"
	"lawos/case-tracker/internal/trash"
)

// TrashHandler exposes soft-delete, restore and trash listing for a
// case's deletable entities.
type TrashHandler struct {
	service *service.CaseService
	logger  *zap.Logger
}

func NewTrashHandler(service *service.CaseService, logger *zap.Logger) *TrashHandler {
	return &TrashHandler{
		service: service,
		logger:  logger,
	}
}

type trashRequest struct {
	CaseID string `json:"caseId"`
	Kind   string `json:"kind"`
	ID     string `json:"id"`
}

func (h *TrashHandler) decode(w http.ResponseWriter, r *http.Request) (string, trash.Kind, string, bool) {
	var req trashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return "", "", "", false
	}
	kind, err := trash.ParseKind(req.Kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", "", "", false
	}
	if req.CaseID == "" || req.ID == "" {
		respondError(w, http.StatusBadRequest, "caseId and id are required")
		return "", "", "", false
	}
	return req.CaseID, kind, req.ID, true
}

func (h *TrashHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caseID, kind, id, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.service.SoftDelete(caseID, kind, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	caseID, kind, id, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.service.Restore(caseID, kind, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	caseID := r.URL.Query().Get("case_id")
	if caseID == "" {
		respondError(w, http.StatusBadRequest, "missing case_id parameter")
		return
	}
	kind, err := trash.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.service.ListTrash(caseID, kind)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
