package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/http/handlers"
	"github.com/tridentevents/crm-api/internal/infra/queue"
	"github.com/tridentevents/crm-api/internal/usecase"
)

type stubLeadRepo struct {
	mock.Mock
}

func (m *stubLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *stubLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *stubLeadRepo) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *stubLeadRepo) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *stubLeadRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	args := m.Called(ctx, id, assigneeID)
	return args.Error(0)
}

func (m *stubLeadRepo) CreateConvertedEvent(ctx context.Context, leadID string, event *entity.Event, status entity.LeadStatus) error {
	args := m.Called(ctx, leadID, event, status)
	return args.Error(0)
}

func (m *stubLeadRepo) DeleteConvertedEvent(ctx context.Context, leadID, eventID string, status entity.LeadStatus) error {
	args := m.Called(ctx, leadID, eventID, status)
	return args.Error(0)
}

type stubProducer struct {
	mock.Mock
}

func (m *stubProducer) PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func newWebhookHandler(t *testing.T, origins []string) (*handlers.WebhookHandler, *stubLeadRepo) {
	t.Helper()
	repo := new(stubLeadRepo)
	producer := new(stubProducer)
	producer.On("PublishLeadCreated", mock.Anything, mock.Anything).Return(nil).Maybe()

	intake := usecase.NewIntakeLeadUseCase(repo, producer, handlers.NewViewCache(0), zap.NewNop())
	return handlers.NewWebhookHandler(intake, origins, zap.NewNop()), repo
}

const validSubmission = `{
	"firstName": "Maria",
	"lastName": "Santos",
	"email": "maria@example.com",
	"phone": "5550101234",
	"eventType": "Wedding",
	"hearAboutUs": "Found you on Instagram"
}`

func TestWebhookAcceptsSubmission(t *testing.T) {
	h, repo := newWebhookHandler(t, []string{"https://tridentevents.com"})
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader(validSubmission))
	req.RemoteAddr = "203.0.113.7:4411"
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	repo.AssertExpectations(t)
}

func TestWebhookRejectsInvalidJSON(t *testing.T) {
	h, _ := newWebhookHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader("{not json"))
	req.RemoteAddr = "203.0.113.8:4411"
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRejectsMissingFields(t *testing.T) {
	h, _ := newWebhookHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader(`{"firstName":"Maria"}`))
	req.RemoteAddr = "203.0.113.9:4411"
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookEchoesAllowedOrigin(t *testing.T) {
	h, repo := newWebhookHandler(t, []string{"https://tridentevents.com"})
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader(validSubmission))
	req.RemoteAddr = "203.0.113.10:4411"
	req.Header.Set("Origin", "https://tridentevents.com")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, "https://tridentevents.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebhookWildcardForUnknownOrigin(t *testing.T) {
	h, repo := newWebhookHandler(t, []string{"https://tridentevents.com"})
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader(validSubmission))
	req.RemoteAddr = "203.0.113.11:4411"
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebhookPreflight(t *testing.T) {
	h, _ := newWebhookHandler(t, []string{"https://tridentevents.com"})

	req := httptest.NewRequest(http.MethodOptions, "/leads/webhook", nil)
	req.Header.Set("Origin", "https://tridentevents.com")
	rec := httptest.NewRecorder()

	h.HandlePreflight(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://tridentevents.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestWebhookRateLimitsPerIP(t *testing.T) {
	h, repo := newWebhookHandler(t, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/leads/webhook", strings.NewReader(validSubmission))
		req.RemoteAddr = "203.0.113.12:4411"
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
