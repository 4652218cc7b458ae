package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/usecase"
)

func newTimesheetUC(entries *MockTimeEntryRepository, users *MockUserRepository, now time.Time) *usecase.TimesheetUseCase {
	uc := usecase.NewTimesheetUseCase(entries, users, 8, 40, zap.NewNop())
	uc.Now = func() time.Time { return now }
	return uc
}

func TestMyWeekPartitionsByWeekday(t *testing.T) {
	ctx := context.Background()
	entries := new(MockTimeEntryRepository)
	// Friday afternoon.
	now := time.Date(2026, 9, 18, 17, 0, 0, 0, time.UTC)
	weekStart := usecase.StartOfWeek(now)

	monday := closedEntry("user-1", weekStart.Add(9*time.Hour), 8*time.Hour)
	wednesday := closedEntry("user-1", weekStart.AddDate(0, 0, 2).Add(10*time.Hour), 4*time.Hour)

	entries.On("FindByUserBetween", ctx, "user-1", weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]*entity.TimeEntry{monday, wednesday}, nil)
	entries.On("FindRecentByUser", ctx, "user-1", 10).Return([]*entity.TimeEntry{}, nil)

	uc := newTimesheetUC(entries, new(MockUserRepository), now)
	out, err := uc.MyWeek(ctx, "user-1")

	assert.NoError(t, err)
	assert.Len(t, out.Week.Days, 7)
	assert.Equal(t, "Mon", out.Week.Days[0].Day)
	assert.Equal(t, 8.0, out.Week.Days[0].Hours)
	assert.Equal(t, 4.0, out.Week.Days[2].Hours)
	assert.Equal(t, 0.0, out.Week.Days[5].Hours)
	assert.Equal(t, 12.0, out.Week.TotalHours)
	assert.Equal(t, 40.0, out.Week.TargetHours)
	assert.Equal(t, 30.0, out.Week.Progress)

	assert.Equal(t, 8.0, out.Week.Days[0].Target)
	assert.Equal(t, 0.0, out.Week.Days[5].Target)
	assert.Equal(t, 0.0, out.Week.Days[6].Target)
}

func TestMyWeekSubtractsBreaksPerEntry(t *testing.T) {
	ctx := context.Background()
	entries := new(MockTimeEntryRepository)
	now := time.Date(2026, 9, 18, 17, 0, 0, 0, time.UTC)
	weekStart := usecase.StartOfWeek(now)

	// 8h shift with a 1h unpaid break counts as 7h.
	long := closedEntry("user-1", weekStart.Add(9*time.Hour), 8*time.Hour)
	long.BreakMinutes = 60
	// 30m shift with a 1h break floors at zero rather than going negative.
	short := closedEntry("user-1", weekStart.AddDate(0, 0, 1).Add(9*time.Hour), 30*time.Minute)
	short.BreakMinutes = 60

	entries.On("FindByUserBetween", ctx, "user-1", weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]*entity.TimeEntry{long, short}, nil)
	entries.On("FindRecentByUser", ctx, "user-1", 10).Return([]*entity.TimeEntry{}, nil)

	uc := newTimesheetUC(entries, new(MockUserRepository), now)
	out, err := uc.MyWeek(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 7.0, out.Week.Days[0].Hours)
	assert.Equal(t, 0.0, out.Week.Days[1].Hours)
	assert.Equal(t, 7.0, out.Week.TotalHours)
}

func TestMyWeekDescribesRecentEntries(t *testing.T) {
	ctx := context.Background()
	entries := new(MockTimeEntryRepository)
	now := time.Date(2026, 9, 18, 17, 0, 0, 0, time.UTC)
	weekStart := usecase.StartOfWeek(now)

	today := closedEntry("user-1", time.Date(2026, 9, 18, 9, 0, 0, 0, time.UTC), 4*time.Hour)
	eventID := "event-1"
	today.EventID = &eventID
	yesterday := closedEntry("user-1", time.Date(2026, 9, 17, 10, 30, 0, 0, time.UTC), 2*time.Hour)
	older := openEntryAt("user-1", time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC))

	entries.On("FindByUserBetween", ctx, "user-1", weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]*entity.TimeEntry{}, nil)
	entries.On("FindRecentByUser", ctx, "user-1", 10).
		Return([]*entity.TimeEntry{today, yesterday, older}, nil)
	entries.On("EventByID", ctx, "event-1").
		Return(&entity.Event{ID: "event-1", Name: "Santos Wedding", Type: "Wedding"}, nil)

	uc := newTimesheetUC(entries, new(MockUserRepository), now)
	out, err := uc.MyWeek(ctx, "user-1")

	assert.NoError(t, err)
	assert.Len(t, out.RecentEntries, 3)

	assert.Equal(t, "Today", out.RecentEntries[0].DateLabel)
	assert.Equal(t, "9:00 AM", out.RecentEntries[0].ClockInLabel)
	assert.Equal(t, "1:00 PM", out.RecentEntries[0].ClockOutLabel)
	assert.Equal(t, "Santos Wedding", out.RecentEntries[0].Project)
	assert.Equal(t, "Wedding", out.RecentEntries[0].Branch)
	assert.Equal(t, "completed", out.RecentEntries[0].Status)

	assert.Equal(t, "Yesterday", out.RecentEntries[1].DateLabel)
	assert.Equal(t, "Work Session", out.RecentEntries[1].Project)

	assert.Equal(t, "Sep 2", out.RecentEntries[2].DateLabel)
	assert.Equal(t, "active", out.RecentEntries[2].Status)
	assert.Empty(t, out.RecentEntries[2].ClockOutLabel)
}

func TestTeamOverviewAggregatesPerMember(t *testing.T) {
	ctx := context.Background()
	entries := new(MockTimeEntryRepository)
	users := new(MockUserRepository)
	// Wednesday noon.
	now := time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)
	weekStart := usecase.StartOfWeek(now)

	alice := &entity.User{ID: "u-alice", FirstName: "Alice", LastName: "Ng", Role: entity.RoleEmployee, State: entity.UserStateActive}
	bob := &entity.User{ID: "u-bob", FirstName: "Bob", LastName: "Tran", Role: entity.RoleManager, JobTitle: "Operations Manager", State: entity.UserStateActive}
	users.On("ListActive", ctx).Return([]*entity.User{alice, bob}, nil)

	aliceMon := closedEntry("u-alice", weekStart.Add(9*time.Hour), 8*time.Hour)
	aliceToday := openEntryAt("u-alice", now.Add(-3*time.Hour))
	entries.On("FindByUsersSince", ctx, []string{"u-alice", "u-bob"}, weekStart).
		Return([]*entity.TimeEntry{aliceMon, aliceToday}, nil)

	uc := newTimesheetUC(entries, users, now)
	out, err := uc.TeamOverview(ctx)

	assert.NoError(t, err)
	assert.Len(t, out.Members, 2)

	a := out.Members[0]
	assert.Equal(t, "Alice Ng", a.Name)
	assert.Equal(t, "AN", a.Initials)
	assert.Equal(t, string(entity.RoleEmployee), a.Role)
	assert.Equal(t, 3.0, a.HoursToday)
	assert.Equal(t, 11.0, a.HoursWeek)
	assert.Equal(t, 40.0, a.TargetWeek)
	assert.True(t, a.IsClockedIn)
	assert.Equal(t, aliceToday.ClockIn, *a.LastClockIn)

	b := out.Members[1]
	assert.Equal(t, "Operations Manager", b.Role)
	assert.Zero(t, b.HoursToday)
	assert.Zero(t, b.HoursWeek)
	assert.False(t, b.IsClockedIn)
	assert.Nil(t, b.LastClockIn)
}

func TestTeamOverviewEmptyRoster(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("ListActive", ctx).Return([]*entity.User{}, nil)

	uc := newTimesheetUC(new(MockTimeEntryRepository), users, time.Now())
	out, err := uc.TeamOverview(ctx)

	assert.NoError(t, err)
	assert.Empty(t, out.Members)
}
