package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// TransitionLeadUseCase applies a requested status change to a lead and keeps
// the lead/event link consistent: entering an event-carrying status creates
// the linked event, leaving one tears it down with its dependents. Each branch
// is a single database transaction, so readers never observe a lead pointing
// at a missing event or an orphaned event.
type TransitionLeadUseCase struct {
	Leads  LeadRepository
	Cache  ViewCache
	Logger *zap.Logger
}

func NewTransitionLeadUseCase(leads LeadRepository, cache ViewCache, logger *zap.Logger) *TransitionLeadUseCase {
	return &TransitionLeadUseCase{Leads: leads, Cache: cache, Logger: logger}
}

type TransitionLeadInput struct {
	LeadID string
	Status entity.LeadStatus
}

type TransitionLeadOutput struct {
	Lead         *entity.Lead `json:"lead"`
	EventCreated bool         `json:"eventCreated"`
	EventDeleted bool         `json:"eventDeleted"`
}

func (uc *TransitionLeadUseCase) Execute(ctx context.Context, input TransitionLeadInput) (*TransitionLeadOutput, error) {
	if input.Status == "" {
		return nil, &DomainError{Code: "STATUS_REQUIRED", Message: "status is required"}
	}
	if !input.Status.IsValid() {
		return nil, &DomainError{Code: "INVALID_STATUS", Message: "invalid status value"}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}

	out := &TransitionLeadOutput{}

	switch {
	case lead.Status.RequiresEvent() && !input.Status.RequiresEvent() && lead.ConvertedToEventID != nil:
		eventID := *lead.ConvertedToEventID
		if err := uc.Leads.DeleteConvertedEvent(ctx, lead.ID, eventID, input.Status); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to revert conversion: " + err.Error()}
		}
		lead.ConvertedToEventID = nil
		out.EventDeleted = true
		uc.Logger.Info("lead conversion reverted",
			zap.String("lead_id", lead.ID),
			zap.String("event_id", eventID),
			zap.String("status", string(input.Status)))

	case input.Status.RequiresEvent() && lead.ConvertedToEventID == nil:
		event := entity.NewEventFromLead(lead)
		if err := uc.Leads.CreateConvertedEvent(ctx, lead.ID, event, input.Status); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to convert lead: " + err.Error()}
		}
		lead.ConvertedToEventID = &event.ID
		out.EventCreated = true
		uc.Logger.Info("lead converted to event",
			zap.String("lead_id", lead.ID),
			zap.String("event_id", event.ID),
			zap.String("status", string(input.Status)))

	default:
		if err := uc.Leads.UpdateStatus(ctx, lead.ID, input.Status); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update status: " + err.Error()}
		}
	}

	lead.Status = input.Status
	out.Lead = lead

	uc.Cache.Invalidate(ViewLeads, ViewEvents)

	return out, nil
}
