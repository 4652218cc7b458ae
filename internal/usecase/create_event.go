package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// CreateEventUseCase handles events staff book directly, without a lead. The
// event row and its assignment rows land in one transaction.
type CreateEventUseCase struct {
	Events EventRepository
	Cache  ViewCache
	Logger *zap.Logger
}

func NewCreateEventUseCase(events EventRepository, cache ViewCache, logger *zap.Logger) *CreateEventUseCase {
	return &CreateEventUseCase{Events: events, Cache: cache, Logger: logger}
}

type AssignmentInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type CreateEventInput struct {
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Date          string            `json:"date"` // "2006-01-02" or RFC3339
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
	Location      string            `json:"location"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	ClientName    string            `json:"clientName"`
	ClientEmail   string            `json:"clientEmail"`
	ClientPhone   string            `json:"clientPhone"`
	GuestCount    *int              `json:"guestCount"`
	Services      []string          `json:"services"`
	Assignments   []AssignmentInput `json:"assignments"`
	TotalPrice    *float64          `json:"totalPrice"`
	Deposit       *float64          `json:"deposit"`
	IsPaid        bool              `json:"isPaid"`
	Notes         string            `json:"notes"`
	InternalNotes string            `json:"internalNotes"`
}

type CreateEventOutput struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
}

func (uc *CreateEventUseCase) Execute(ctx context.Context, input CreateEventInput) (*CreateEventOutput, error) {
	if input.Name == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "name is required"}
	}
	if input.Type == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "type is required"}
	}
	if input.Location == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "location is required"}
	}
	if input.ClientName == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "clientName is required"}
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "date must be a valid date"}
	}

	services := input.Services
	if services == nil {
		services = []string{}
	}

	event := &entity.Event{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Type:          input.Type,
		Date:          date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Location:      input.Location,
		Address:       input.Address,
		City:          input.City,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		ClientPhone:   input.ClientPhone,
		GuestCount:    input.GuestCount,
		Services:      services,
		TotalPrice:    input.TotalPrice,
		Deposit:       input.Deposit,
		IsPaid:        input.IsPaid,
		Notes:         input.Notes,
		InternalNotes: input.InternalNotes,
		Status:        entity.EventStatusScheduled,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	assignments := make([]entity.EventAssignment, 0, len(input.Assignments))
	for _, a := range input.Assignments {
		assignments = append(assignments, entity.EventAssignment{
			ID:        uuid.New().String(),
			EventID:   event.ID,
			UserID:    a.UserID,
			Role:      a.Role,
			CreatedAt: time.Now(),
		})
	}

	if err := uc.Events.CreateWithAssignments(ctx, event, assignments); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create event: " + err.Error()}
	}

	uc.Cache.Invalidate(ViewEvents)
	uc.Logger.Info("event created", zap.String("event_id", event.ID), zap.Int("assignments", len(assignments)))

	return &CreateEventOutput{Success: true, EventID: event.ID}, nil
}
