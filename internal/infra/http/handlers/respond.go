package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/http/middleware"
	"github.com/tridentevents/crm-api/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUseCaseError maps the error taxonomy onto HTTP statuses: domain
// rejections are 400, missing entities 404, anything else a logged 500.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case usecase.IsDomainError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrLeadNotFound),
		errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrTimeEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// UserResolver maps the token subject to a local staff record.
type UserResolver interface {
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)
}

// currentUser resolves the authenticated staff member, writing the 401
// itself when the identity maps to no local user.
func currentUser(w http.ResponseWriter, r *http.Request, users UserResolver) (*entity.User, bool) {
	subject, ok := middleware.Subject(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	user, err := users.FindByExternalID(r.Context(), subject)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "User record not found for this account")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}

	return user, true
}
