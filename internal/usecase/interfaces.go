package usecase

import (
	"context"
	"time"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/queue"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	ListAll(ctx context.Context) ([]*entity.Lead, error)
	UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *string) error

	// CreateConvertedEvent atomically inserts the event, links the lead to it
	// and moves the lead to status, all in one database transaction.
	CreateConvertedEvent(ctx context.Context, leadID string, event *entity.Event, status entity.LeadStatus) error

	// DeleteConvertedEvent atomically deletes the event's assignments and
	// time entries, the event itself, and clears the lead's link while moving
	// it to status, all in one database transaction.
	DeleteConvertedEvent(ctx context.Context, leadID, eventID string, status entity.LeadStatus) error
}

type EventRepository interface {
	CreateWithAssignments(ctx context.Context, event *entity.Event, assignments []entity.EventAssignment) error
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	ListAll(ctx context.Context) ([]*entity.Event, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	ListActive(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetState(ctx context.Context, id string, state entity.UserState) error
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry *entity.TimeEntry) error
	Update(ctx context.Context, entry *entity.TimeEntry) error
	FindOpenByUser(ctx context.Context, userID string) (*entity.TimeEntry, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]*entity.TimeEntry, error)
	FindByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*entity.TimeEntry, error)
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.TimeEntry, error)
	FindByUsersSince(ctx context.Context, userIDs []string, since time.Time) ([]*entity.TimeEntry, error)
	FindOwnedByID(ctx context.Context, id, userID string) (*entity.TimeEntry, error)
	DeleteOwnedByIDs(ctx context.Context, ids []string, userID string) (int64, error)
	EventByID(ctx context.Context, eventID string) (*entity.Event, error)
}

type QueueProducer interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

// ViewCache is the handler-level cache of rendered list views. Mutating
// usecases invalidate the affected keys after a successful write.
type ViewCache interface {
	Invalidate(keys ...string)
}

const (
	ViewLeads  = "leads"
	ViewEvents = "events"
)
