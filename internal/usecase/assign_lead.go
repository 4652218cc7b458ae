package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// LeadOwnerPolicy decides which roles may own leads. Built from configuration
// because the allowed set has changed over the product's life.
type LeadOwnerPolicy func(role entity.UserRole) bool

// NewLeadOwnerPolicy builds the predicate from a closed role list.
func NewLeadOwnerPolicy(roles []entity.UserRole) LeadOwnerPolicy {
	allowed := make(map[entity.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(role entity.UserRole) bool {
		return allowed[role]
	}
}

type AssignLeadUseCase struct {
	Leads  LeadRepository
	Users  UserRepository
	CanOwn LeadOwnerPolicy
	Cache  ViewCache
	Logger *zap.Logger
}

func NewAssignLeadUseCase(leads LeadRepository, users UserRepository, policy LeadOwnerPolicy, cache ViewCache, logger *zap.Logger) *AssignLeadUseCase {
	return &AssignLeadUseCase{Leads: leads, Users: users, CanOwn: policy, Cache: cache, Logger: logger}
}

type AssignLeadInput struct {
	LeadID       string
	AssignedToID *string // nil clears the assignment
}

func (uc *AssignLeadUseCase) Execute(ctx context.Context, input AssignLeadInput) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead: " + err.Error()}
	}

	if input.AssignedToID != nil {
		user, err := uc.Users.FindByID(ctx, *input.AssignedToID)
		if err != nil {
			if errors.Is(err, entity.ErrUserNotFound) {
				return nil, err
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load assignee: " + err.Error()}
		}
		if !user.IsActive() {
			return nil, &DomainError{Code: "ASSIGNEE_INACTIVE", Message: "cannot assign to inactive user"}
		}
		if !uc.CanOwn(user.Role) {
			return nil, &DomainError{Code: "ASSIGNEE_ROLE", Message: "user does not have permission to handle leads"}
		}
	}

	if err := uc.Leads.UpdateAssignee(ctx, lead.ID, input.AssignedToID); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update assignment: " + err.Error()}
	}

	lead.AssignedToID = input.AssignedToID
	uc.Cache.Invalidate(ViewLeads)

	uc.Logger.Info("lead assignment updated",
		zap.String("lead_id", lead.ID),
		zap.Stringp("assigned_to", input.AssignedToID))

	return lead, nil
}
