package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/usecase"
)

// UserHandler covers the admin-only staff management endpoints.
type UserHandler struct {
	Manage *usecase.ManageUserUseCase
	Users  UserResolver
	Logger *zap.Logger
}

func NewUserHandler(manage *usecase.ManageUserUseCase, users UserResolver, logger *zap.Logger) *UserHandler {
	return &UserHandler{Manage: manage, Users: users, Logger: logger}
}

func (h *UserHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	caller, ok := currentUser(w, r, h.Users)
	if !ok {
		return false
	}
	if caller.Role != entity.RoleAdmin {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return false
	}
	return true
}

func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var input usecase.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	input.UserID = chi.URLParam(r, "userID")

	user, err := h.Manage.Update(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.Manage.Deactivate(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
