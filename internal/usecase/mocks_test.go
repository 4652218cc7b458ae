package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	args := m.Called(ctx, id, assigneeID)
	return args.Error(0)
}

func (m *MockLeadRepository) CreateConvertedEvent(ctx context.Context, leadID string, event *entity.Event, status entity.LeadStatus) error {
	args := m.Called(ctx, leadID, event, status)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteConvertedEvent(ctx context.Context, leadID, eventID string, status entity.LeadStatus) error {
	args := m.Called(ctx, leadID, eventID, status)
	return args.Error(0)
}

// MockEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateWithAssignments(ctx context.Context, event *entity.Event, assignments []entity.EventAssignment) error {
	args := m.Called(ctx, event, assignments)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) ListAll(ctx context.Context) ([]*entity.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Event), args.Error(1)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListActive(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetState(ctx context.Context, id string, state entity.UserState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

// MockTimeEntryRepository
type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) Create(ctx context.Context, entry *entity.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) Update(ctx context.Context, entry *entity.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*entity.TimeEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]*entity.TimeEntry, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*entity.TimeEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.TimeEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByUsersSince(ctx context.Context, userIDs []string, since time.Time) ([]*entity.TimeEntry, error) {
	args := m.Called(ctx, userIDs, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindOwnedByID(ctx context.Context, id, userID string) (*entity.TimeEntry, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) DeleteOwnedByIDs(ctx context.Context, ids []string, userID string) (int64, error) {
	args := m.Called(ctx, ids, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimeEntryRepository) EventByID(ctx context.Context, eventID string) (*entity.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// FakeViewCache records invalidations.
type FakeViewCache struct {
	Invalidated []string
}

func (c *FakeViewCache) Invalidate(keys ...string) {
	c.Invalidated = append(c.Invalidated, keys...)
}
