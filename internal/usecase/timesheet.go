package usecase

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// TimesheetUseCase builds the weekly aggregates: the caller's day-by-day
// breakdown and the team-wide overview. Weeks start Monday; unpaid breaks are
// subtracted per entry and floored at zero before summing.
type TimesheetUseCase struct {
	Entries TimeEntryRepository
	Users   UserRepository
	Logger  *zap.Logger

	DailyTargetHours  float64
	WeeklyTargetHours float64

	Now func() time.Time
}

func NewTimesheetUseCase(entries TimeEntryRepository, users UserRepository, dailyTarget, weeklyTarget float64, logger *zap.Logger) *TimesheetUseCase {
	return &TimesheetUseCase{
		Entries:           entries,
		Users:             users,
		Logger:            logger,
		DailyTargetHours:  dailyTarget,
		WeeklyTargetHours: weeklyTarget,
		Now:               time.Now,
	}
}

type DayBreakdown struct {
	Day    string  `json:"day"`
	Hours  float64 `json:"hours"`
	Target float64 `json:"target"`
}

type WeekSummary struct {
	TotalHours  float64        `json:"totalHours"`
	TargetHours float64        `json:"targetHours"`
	Progress    float64        `json:"progress"`
	Days        []DayBreakdown `json:"days"`
}

type RecentEntry struct {
	ID              string  `json:"id"`
	DateLabel       string  `json:"dateLabel"`
	ClockInLabel    string  `json:"clockInLabel"`
	ClockOutLabel   string  `json:"clockOutLabel,omitempty"`
	Hours           float64 `json:"hours"`
	Project         string  `json:"project"`
	Branch          string  `json:"branch,omitempty"`
	Status          string  `json:"status"`
	HasOneHourBreak bool    `json:"hasOneHourBreak"`
}

type MyTimesheetOutput struct {
	Week          WeekSummary   `json:"week"`
	RecentEntries []RecentEntry `json:"recentEntries"`
}

// MyWeek returns the caller's current-week breakdown plus the ten most recent
// sessions.
func (uc *TimesheetUseCase) MyWeek(ctx context.Context, userID string) (*MyTimesheetOutput, error) {
	now := uc.Now()
	weekStart := StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	weekEntries, err := uc.Entries.FindByUserBetween(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load week entries: " + err.Error()}
	}

	days := []DayBreakdown{
		{Day: "Mon", Target: uc.DailyTargetHours},
		{Day: "Tue", Target: uc.DailyTargetHours},
		{Day: "Wed", Target: uc.DailyTargetHours},
		{Day: "Thu", Target: uc.DailyTargetHours},
		{Day: "Fri", Target: uc.DailyTargetHours},
		{Day: "Sat", Target: 0},
		{Day: "Sun", Target: 0},
	}

	for _, e := range weekEntries {
		idx := (int(e.ClockIn.Weekday()) + 6) % 7 // Monday = 0
		days[idx].Hours += e.WorkedHours(now)
	}

	var totalHours, targetHours float64
	for i := range days {
		days[i].Hours = round2(days[i].Hours)
		totalHours += days[i].Hours
		targetHours += days[i].Target
	}
	if targetHours == 0 {
		targetHours = 1
	}

	recent, err := uc.Entries.FindRecentByUser(ctx, userID, 10)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load recent entries: " + err.Error()}
	}

	return &MyTimesheetOutput{
		Week: WeekSummary{
			TotalHours:  round2(totalHours),
			TargetHours: targetHours,
			Progress:    round2(totalHours / targetHours * 100),
			Days:        days,
		},
		RecentEntries: uc.describeEntries(ctx, recent, now),
	}, nil
}

func (uc *TimesheetUseCase) describeEntries(ctx context.Context, entries []*entity.TimeEntry, now time.Time) []RecentEntry {
	todayStart := StartOfDay(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	out := make([]RecentEntry, 0, len(entries))
	for _, e := range entries {
		re := RecentEntry{
			ID:              e.ID,
			DateLabel:       dateLabel(e.ClockIn, todayStart, yesterdayStart),
			ClockInLabel:    e.ClockIn.Format("3:04 PM"),
			Hours:           round2(e.WorkedHours(now)),
			Project:         "Work Session",
			Status:          "active",
			HasOneHourBreak: e.BreakMinutes >= 60,
		}
		if e.ClockOut != nil {
			re.ClockOutLabel = e.ClockOut.Format("3:04 PM")
			re.Status = "completed"
		}

		if e.EventID != nil {
			if event, err := uc.Entries.EventByID(ctx, *e.EventID); err == nil && event != nil {
				if event.Name != "" {
					re.Project = event.Name
				} else if event.Type != "" && event.ClientName != "" {
					re.Project = event.Type + " - " + event.ClientName
				}
				re.Branch = event.Type
			}
		}

		out = append(out, re)
	}
	return out
}

type TeamMember struct {
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Initials    string     `json:"initials"`
	Role        string     `json:"role"`
	HoursToday  float64    `json:"hoursToday"`
	HoursWeek   float64    `json:"hoursWeek"`
	TargetWeek  float64    `json:"targetWeek"`
	IsClockedIn bool       `json:"isClockedIn"`
	LastClockIn *time.Time `json:"lastClockIn,omitempty"`
}

type TeamOverviewOutput struct {
	Members []TeamMember `json:"members"`
}

// TeamOverview aggregates today/week hours for every active staff member.
func (uc *TimesheetUseCase) TeamOverview(ctx context.Context) (*TeamOverviewOutput, error) {
	users, err := uc.Users.ListActive(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load users: " + err.Error()}
	}
	if len(users) == 0 {
		return &TeamOverviewOutput{Members: []TeamMember{}}, nil
	}

	now := uc.Now()
	todayStart := StartOfDay(now)
	weekStart := StartOfWeek(now)

	userIDs := make([]string, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}

	entries, err := uc.Entries.FindByUsersSince(ctx, userIDs, weekStart)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load week entries: " + err.Error()}
	}

	type acc struct {
		hoursToday  float64
		hoursWeek   float64
		isClockedIn bool
		lastClockIn *time.Time
	}
	aggregates := make(map[string]*acc)

	for _, e := range entries {
		a := aggregates[e.UserID]
		if a == nil {
			a = &acc{}
			aggregates[e.UserID] = a
		}

		h := e.RawHours(now)
		a.hoursWeek += h
		if !e.ClockIn.Before(todayStart) {
			a.hoursToday += h
		}

		clockIn := e.ClockIn
		if e.ClockOut == nil {
			a.isClockedIn = true
			a.lastClockIn = &clockIn
		} else if a.lastClockIn == nil || clockIn.After(*a.lastClockIn) {
			a.lastClockIn = &clockIn
		}
	}

	members := make([]TeamMember, 0, len(users))
	for _, u := range users {
		a := aggregates[u.ID]
		if a == nil {
			a = &acc{}
		}

		role := string(u.Role)
		if u.JobTitle != "" {
			role = u.JobTitle
		}

		members = append(members, TeamMember{
			UserID:      u.ID,
			Name:        u.FullName(),
			Initials:    u.Initials(),
			Role:        role,
			HoursToday:  round2(a.hoursToday),
			HoursWeek:   round2(a.hoursWeek),
			TargetWeek:  uc.WeeklyTargetHours,
			IsClockedIn: a.isClockedIn,
			LastClockIn: a.lastClockIn,
		})
	}

	return &TeamOverviewOutput{Members: members}, nil
}

func dateLabel(t, todayStart, yesterdayStart time.Time) string {
	d := StartOfDay(t)
	switch {
	case d.Equal(todayStart):
		return "Today"
	case d.Equal(yesterdayStart):
		return "Yesterday"
	default:
		return t.Format("Jan 2")
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
