package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/infra/http/middleware"
	"github.com/tridentevents/crm-api/internal/usecase"
)

type TimeClockHandler struct {
	Clock     *usecase.TimeClockUseCase
	Timesheet *usecase.TimesheetUseCase
	Users     UserResolver
	Logger    *zap.Logger
}

func NewTimeClockHandler(clock *usecase.TimeClockUseCase, timesheet *usecase.TimesheetUseCase, users UserResolver, logger *zap.Logger) *TimeClockHandler {
	return &TimeClockHandler{
		Clock:     clock,
		Timesheet: timesheet,
		Users:     users,
		Logger:    logger,
	}
}

func (h *TimeClockHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.Users)
	if !ok {
		return
	}

	output, err := h.Clock.Status(r.Context(), user.ID)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *TimeClockHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.Users)
	if !ok {
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch body.Action {
	case "clock-in":
		entry, err := h.Clock.ClockIn(r.Context(), user.ID)
		if err != nil {
			writeUseCaseError(w, h.Logger, err)
			return
		}
		middleware.RecordClockEvent("clock-in")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Clocked in", "entry": entry})

	case "clock-out":
		entry, err := h.Clock.ClockOut(r.Context(), user.ID)
		if err != nil {
			writeUseCaseError(w, h.Logger, err)
			return
		}
		middleware.RecordClockEvent("clock-out")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Clocked out", "entry": entry})

	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

func (h *TimeClockHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.Users); !ok {
		return
	}

	output, err := h.Timesheet.TeamOverview(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
