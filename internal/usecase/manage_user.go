package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// ManageUserUseCase covers the admin-only profile update and deactivation.
// Deactivation is a lifecycle change, never a row delete.
type ManageUserUseCase struct {
	Users  UserRepository
	Logger *zap.Logger
}

func NewManageUserUseCase(users UserRepository, logger *zap.Logger) *ManageUserUseCase {
	return &ManageUserUseCase{Users: users, Logger: logger}
}

type UpdateUserInput struct {
	UserID string

	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Role           string   `json:"role"`
	EmploymentType string   `json:"employmentType"`
	JobTitle       string   `json:"jobTitle"`
	HourlyRate     *float64 `json:"hourlyRate"`
	IsActive       *bool    `json:"isActive"`
}

func (uc *ManageUserUseCase) Update(ctx context.Context, input UpdateUserInput) (*entity.User, error) {
	if input.Role != "" && !entity.UserRole(input.Role).IsValid() {
		return nil, &DomainError{Code: "INVALID_ROLE", Message: "invalid role"}
	}
	if input.EmploymentType != "" && !entity.EmploymentType(input.EmploymentType).IsValid() {
		return nil, &DomainError{Code: "INVALID_EMPLOYMENT_TYPE", Message: "invalid employment type"}
	}

	user, err := uc.Users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load user: " + err.Error()}
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.Phone = input.Phone
	user.JobTitle = input.JobTitle
	if input.Role != "" {
		user.Role = entity.UserRole(input.Role)
	}
	if input.EmploymentType != "" {
		user.EmploymentType = entity.EmploymentType(input.EmploymentType)
	}
	user.HourlyRate = input.HourlyRate
	if input.IsActive != nil {
		if *input.IsActive {
			user.State = entity.UserStateActive
		} else {
			user.State = entity.UserStateDeactivated
		}
	}

	if err := uc.Users.Update(ctx, user); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update user: " + err.Error()}
	}

	uc.Logger.Info("user updated", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (uc *ManageUserUseCase) Deactivate(ctx context.Context, userID string) error {
	if _, err := uc.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return err
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load user: " + err.Error()}
	}

	if err := uc.Users.SetState(ctx, userID, entity.UserStateDeactivated); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to deactivate user: " + err.Error()}
	}

	uc.Logger.Info("user deactivated", zap.String("user_id", userID))
	return nil
}
