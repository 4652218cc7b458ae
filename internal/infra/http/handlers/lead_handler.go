package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/http/middleware"
	"github.com/tridentevents/crm-api/internal/usecase"
)

type LeadHandler struct {
	Transition *usecase.TransitionLeadUseCase
	Assign     *usecase.AssignLeadUseCase
	Leads      usecase.LeadRepository
	Cache      *ViewCache
	Logger     *zap.Logger
}

func NewLeadHandler(transition *usecase.TransitionLeadUseCase, assign *usecase.AssignLeadUseCase, leads usecase.LeadRepository, cache *ViewCache, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		Transition: transition,
		Assign:     assign,
		Leads:      leads,
		Cache:      cache,
		Logger:     logger,
	}
}

func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.Transition.Execute(r.Context(), usecase.TransitionLeadInput{
		LeadID: leadID,
		Status: entity.LeadStatus(body.Status),
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	if output.EventCreated {
		middleware.RecordConversion("created")
	}
	if output.EventDeleted {
		middleware.RecordConversion("deleted")
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var body struct {
		AssignedToID *string `json:"assignedToId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Treat an explicit empty string the same as null: clear the assignment.
	if body.AssignedToID != nil && *body.AssignedToID == "" {
		body.AssignedToID = nil
	}

	lead, err := h.Assign.Execute(r.Context(), usecase.AssignLeadInput{
		LeadID:       leadID,
		AssignedToID: body.AssignedToID,
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if body, ok := h.Cache.Get(usecase.ViewLeads); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	leads, err := h.Leads.ListAll(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	body, err := json.Marshal(leads)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.Cache.Set(usecase.ViewLeads, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
