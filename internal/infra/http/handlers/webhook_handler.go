package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/infra/http/middleware"
	"github.com/tridentevents/crm-api/internal/usecase"
)

// WebhookHandler is the public lead-intake endpoint embedded marketing forms
// post to. It is the only unauthenticated write in the service, so it carries
// its own rate limiter and origin allow-list.
type WebhookHandler struct {
	Intake         *usecase.IntakeLeadUseCase
	AllowedOrigins map[string]bool
	Logger         *zap.Logger

	rateLimiter *RateLimiter
}

func NewWebhookHandler(intake *usecase.IntakeLeadUseCase, allowedOrigins []string, logger *zap.Logger) *WebhookHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebhookHandler{
		Intake:         intake,
		AllowedOrigins: allowed,
		Logger:         logger,
		rateLimiter:    NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.setCORSOrigin(w, r)

	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.IntakeLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.Intake.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	middleware.RecordLeadReceived(string(usecase.InferLeadSource(input.HearAboutUs)))

	writeJSON(w, http.StatusCreated, output)
}

// HandlePreflight answers the CORS preflight the marketing sites send before
// the POST.
func (h *WebhookHandler) HandlePreflight(w http.ResponseWriter, r *http.Request) {
	h.setCORSOrigin(w, r)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", strconv.Itoa(86400))
	w.WriteHeader(http.StatusNoContent)
}

// setCORSOrigin echoes origins on the allow-list and falls back to a wildcard
// for everything else, matching the embedded-form deployments.
func (h *WebhookHandler) setCORSOrigin(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && h.AllowedOrigins[origin] {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	} else {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
}
