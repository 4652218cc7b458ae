package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/usecase"
)

func TestCreateEventRequiresCoreFields(t *testing.T) {
	uc := usecase.NewCreateEventUseCase(new(MockEventRepository), &FakeViewCache{}, zap.NewNop())

	for _, input := range []usecase.CreateEventInput{
		{Type: "Wedding", Location: "Hall", ClientName: "Maria", Date: "2026-10-03"},
		{Name: "Santos Wedding", Location: "Hall", ClientName: "Maria", Date: "2026-10-03"},
		{Name: "Santos Wedding", Type: "Wedding", ClientName: "Maria", Date: "2026-10-03"},
		{Name: "Santos Wedding", Type: "Wedding", Location: "Hall", Date: "2026-10-03"},
		{Name: "Santos Wedding", Type: "Wedding", Location: "Hall", ClientName: "Maria", Date: "next friday"},
	} {
		_, err := uc.Execute(context.Background(), input)
		assert.True(t, usecase.IsDomainError(err))
	}
}

func TestCreateEventWithAssignments(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEventRepository)
	cache := &FakeViewCache{}

	var created *entity.Event
	var assignments []entity.EventAssignment
	repo.On("CreateWithAssignments", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Event)
			assignments = args.Get(2).([]entity.EventAssignment)
		}).
		Return(nil)

	uc := usecase.NewCreateEventUseCase(repo, cache, zap.NewNop())
	out, err := uc.Execute(ctx, usecase.CreateEventInput{
		Name:       "Santos Wedding",
		Type:       "Wedding",
		Date:       "2026-10-03",
		StartTime:  "17:00",
		EndTime:    "23:00",
		Location:   "Harborview Terrace",
		ClientName: "Maria Santos",
		Services:   []string{"DJ", "Photobooth"},
		Assignments: []usecase.AssignmentInput{
			{UserID: "u-1", Role: "DJ"},
			{UserID: "u-2", Role: "Coordinator"},
		},
	})

	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, created.ID, out.EventID)
	assert.Equal(t, entity.EventStatusScheduled, created.Status)
	assert.Equal(t, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Equal(t, []string{"DJ", "Photobooth"}, created.Services)

	assert.Len(t, assignments, 2)
	assert.Equal(t, created.ID, assignments[0].EventID)
	assert.Equal(t, "u-1", assignments[0].UserID)
	assert.Equal(t, "DJ", assignments[0].Role)
	assert.False(t, assignments[0].IsConfirmed)

	assert.Contains(t, cache.Invalidated, usecase.ViewEvents)
}
