package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/usecase"
)

type EventHandler struct {
	Create *usecase.CreateEventUseCase
	Events usecase.EventRepository
	Users  UserResolver
	Cache  *ViewCache
	Logger *zap.Logger
}

func NewEventHandler(create *usecase.CreateEventUseCase, events usecase.EventRepository, users UserResolver, cache *ViewCache, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		Create: create,
		Events: events,
		Users:  users,
		Cache:  cache,
		Logger: logger,
	}
}

func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r, h.Users); !ok {
		return
	}

	var input usecase.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.Create.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if body, ok := h.Cache.Get(usecase.ViewEvents); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	events, err := h.Events.ListAll(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	if events == nil {
		events = []*entity.Event{}
	}

	body, err := json.Marshal(events)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.Cache.Set(usecase.ViewEvents, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
