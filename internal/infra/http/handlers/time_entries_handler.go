package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/usecase"
)

type TimeEntriesHandler struct {
	Clock     *usecase.TimeClockUseCase
	Timesheet *usecase.TimesheetUseCase
	Users     UserResolver
	Logger    *zap.Logger
}

func NewTimeEntriesHandler(clock *usecase.TimeClockUseCase, timesheet *usecase.TimesheetUseCase, users UserResolver, logger *zap.Logger) *TimeEntriesHandler {
	return &TimeEntriesHandler{
		Clock:     clock,
		Timesheet: timesheet,
		Users:     users,
		Logger:    logger,
	}
}

// HandleMyWeek serves the caller's weekly breakdown and recent sessions.
func (h *TimeEntriesHandler) HandleMyWeek(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.Users)
	if !ok {
		return
	}

	output, err := h.Timesheet.MyWeek(r.Context(), user.ID)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleBulkDelete removes entries owned by the caller.
func (h *TimeEntriesHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.Users)
	if !ok {
		return
	}

	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.Clock.DeleteEntries(r.Context(), user.ID, body.IDs); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleSetBreak updates break minutes on one of the caller's entries.
func (h *TimeEntriesHandler) HandleSetBreak(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.Users)
	if !ok {
		return
	}

	var body struct {
		ID           string `json:"id"`
		BreakMinutes *int   `json:"breakMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.ID == "" || body.BreakMinutes == nil {
		writeError(w, http.StatusBadRequest, "id and breakMinutes are required")
		return
	}

	entry, err := h.Clock.SetBreak(r.Context(), user.ID, body.ID, *body.BreakMinutes)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}
