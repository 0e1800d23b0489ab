package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/export"
	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/service"
)

// CaseHandler exposes entity creation and the billing CSV export.
type CaseHandler struct {
	service *service.CaseService
	logger  *zap.Logger
}

func NewCaseHandler(service *service.CaseService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	c, err := h.service.CreateCase(in)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *CaseHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var p models.Party
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := h.service.CreateParty(p)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type addTaskRequest struct {
	CaseID string `json:"caseId"`
	service.AddTaskInput
}

func (h *CaseHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := h.service.AddTask(req.CaseID, req.AddTaskInput)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

type addLogRequest struct {
	CaseID  string `json:"caseId"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (h *CaseHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	var req addLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.service.AddLog(req.CaseID, req.Date, req.Content)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

type addReminderRequest struct {
	CaseID string `json:"caseId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Title  string `json:"title"`
}

func (h *CaseHandler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var req addReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rem, err := h.service.AddReminder(req.CaseID, req.Date, req.Time, req.Title)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, rem)
}

type addDeadlineRequest struct {
	CaseID string `json:"caseId"`
	Date   string `json:"date"`
	Title  string `json:"title"`
}

func (h *CaseHandler) AddDeadline(w http.ResponseWriter, r *http.Request) {
	var req addDeadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.service.AddDeadline(req.CaseID, req.Date, req.Title)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

// ExportCSV streams one billing row per task across all cases.
func (h *CaseHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot()
	if err != nil {
		h.logger.Error("Failed to load snapshot", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=cases_%s.csv", now.Format("2006-01-02")))
	if err := export.WriteCSV(w, snap.Cases, now); err != nil {
		h.logger.Error("Failed to write csv export", zap.Error(err))
	}
}
