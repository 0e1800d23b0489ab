package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/service"
)

// TimerHandler exposes the task timer operations.
type TimerHandler struct {
	service *service.CaseService
	logger  *zap.Logger
}

func NewTimerHandler(service *service.CaseService, logger *zap.Logger) *TimerHandler {
	return &TimerHandler{
		service: service,
		logger:  logger,
	}
}

type timerRequest struct {
	CaseID string `json:"caseId"`
	TaskID string `json:"taskId"`
}

type manualSessionRequest struct {
	CaseID string `json:"caseId"`
	TaskID string `json:"taskId"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (h *TimerHandler) decodeTimerRequest(w http.ResponseWriter, r *http.Request) (timerRequest, bool) {
	var req timerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.CaseID == "" || req.TaskID == "" {
		respondError(w, http.StatusBadRequest, "caseId and taskId are required")
		return req, false
	}
	return req, true
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTimerRequest(w, r)
	if !ok {
		return
	}
	task, err := h.service.StartTimer(req.CaseID, req.TaskID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTimerRequest(w, r)
	if !ok {
		return
	}
	task, err := h.service.PauseTimer(req.CaseID, req.TaskID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TimerHandler) Complete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTimerRequest(w, r)
	if !ok {
		return
	}
	task, err := h.service.CompleteTask(req.CaseID, req.TaskID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TimerHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeTimerRequest(w, r)
	if !ok {
		return
	}
	task, err := h.service.ReopenTask(req.CaseID, req.TaskID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TimerHandler) AddManualSession(w http.ResponseWriter, r *http.Request) {
	var req manualSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.AddManualSession(req.CaseID, req.TaskID, req.Start, req.End)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Active reports the task the floating timer widget should show. When
// nothing is running and no stored reference resolves, the body is
// {"active": null}.
func (h *TimerHandler) Active(w http.ResponseWriter, r *http.Request) {
	active, err := h.service.ActiveTimer()
	if err != nil {
		h.logger.Error("Failed to resolve active timer", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"active": active})
}

func (h *TimerHandler) ToggleMinimized(w http.ResponseWriter, r *http.Request) {
	minimized, err := h.service.ToggleMinimized()
	if err != nil {
		h.logger.Error("Failed to toggle minimized flag", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"minimized": minimized})
}
