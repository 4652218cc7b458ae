package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/usecase"
)

func newAssignUC(leads *MockLeadRepository, users *MockUserRepository, roles ...entity.UserRole) *usecase.AssignLeadUseCase {
	if len(roles) == 0 {
		roles = []entity.UserRole{entity.RoleSalesLead}
	}
	return usecase.NewAssignLeadUseCase(leads, users, usecase.NewLeadOwnerPolicy(roles), &FakeViewCache{}, zap.NewNop())
}

func salesUser(role entity.UserRole, state entity.UserState) *entity.User {
	return &entity.User{
		ID:        "user-1",
		FirstName: "Jordan",
		LastName:  "Reyes",
		Role:      role,
		State:     state,
	}
}

func TestAssignLeadToSalesLead(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)
	assigneeID := "user-1"

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	users.On("FindByID", ctx, "user-1").Return(salesUser(entity.RoleSalesLead, entity.UserStateActive), nil)
	leads.On("UpdateAssignee", ctx, "lead-1", &assigneeID).Return(nil)

	uc := newAssignUC(leads, users)
	lead, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: &assigneeID})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", *lead.AssignedToID)
	leads.AssertExpectations(t)
}

func TestAssignLeadRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)
	assigneeID := "user-1"

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	users.On("FindByID", ctx, "user-1").Return(salesUser(entity.RoleSalesLead, entity.UserStateDeactivated), nil)

	uc := newAssignUC(leads, users)
	_, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: &assigneeID})

	assert.True(t, usecase.IsDomainError(err))
	assert.Contains(t, err.Error(), "inactive")
	leads.AssertNotCalled(t, "UpdateAssignee", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignLeadRejectsUnauthorizedRole(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)
	assigneeID := "user-1"

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	users.On("FindByID", ctx, "user-1").Return(salesUser(entity.RoleEmployee, entity.UserStateActive), nil)

	uc := newAssignUC(leads, users)
	_, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: &assigneeID})

	assert.True(t, usecase.IsDomainError(err))
	assert.Contains(t, err.Error(), "permission")
}

func TestAssignLeadPolicyIsConfigurable(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)
	assigneeID := "user-1"

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	users.On("FindByID", ctx, "user-1").Return(salesUser(entity.RoleManager, entity.UserStateActive), nil)
	leads.On("UpdateAssignee", ctx, "lead-1", &assigneeID).Return(nil)

	// The wider historical policy, enabled through configuration.
	uc := newAssignUC(leads, users, entity.RoleAdmin, entity.RoleSalesLead, entity.RoleManager)
	_, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: &assigneeID})

	assert.NoError(t, err)
}

func TestAssignLeadAssigneeNotFound(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)
	assigneeID := "ghost"

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	users.On("FindByID", ctx, "ghost").Return(nil, entity.ErrUserNotFound)

	uc := newAssignUC(leads, users)
	_, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: &assigneeID})

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestAssignLeadClearsAssignment(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	users := new(MockUserRepository)

	leads.On("FindByID", ctx, "lead-1").Return(sampleLead(entity.LeadStatusNew), nil)
	leads.On("UpdateAssignee", ctx, "lead-1", (*string)(nil)).Return(nil)

	uc := newAssignUC(leads, users)
	lead, err := uc.Execute(ctx, usecase.AssignLeadInput{LeadID: "lead-1", AssignedToID: nil})

	assert.NoError(t, err)
	assert.Nil(t, lead.AssignedToID)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
