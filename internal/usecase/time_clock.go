package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

// TimeClockUseCase enforces the single-open-session rule: a user has at most
// one entry with no clock-out at any time.
type TimeClockUseCase struct {
	Entries TimeEntryRepository
	Logger  *zap.Logger

	// Now is stubbed in tests; defaults to time.Now.
	Now func() time.Time
}

func NewTimeClockUseCase(entries TimeEntryRepository, logger *zap.Logger) *TimeClockUseCase {
	return &TimeClockUseCase{Entries: entries, Logger: logger, Now: time.Now}
}

type ClockStatusOutput struct {
	IsClockedIn       bool              `json:"isClockedIn"`
	OpenEntry         *entity.TimeEntry `json:"openEntry,omitempty"`
	TotalSecondsToday int64             `json:"totalSecondsToday"`
}

// Status reports the open entry, if any, and today's total. Entries still open
// count up to now; today starts at local midnight.
func (uc *TimeClockUseCase) Status(ctx context.Context, userID string) (*ClockStatusOutput, error) {
	open, err := uc.Entries.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load open entry: " + err.Error()}
	}

	now := uc.Now()
	todays, err := uc.Entries.FindByUserSince(ctx, userID, StartOfDay(now))
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load today's entries: " + err.Error()}
	}

	var total time.Duration
	for _, e := range todays {
		end := now
		if e.ClockOut != nil {
			end = *e.ClockOut
		}
		total += end.Sub(e.ClockIn)
	}

	return &ClockStatusOutput{
		IsClockedIn:       open != nil,
		OpenEntry:         open,
		TotalSecondsToday: int64(total.Seconds()),
	}, nil
}

// ClockIn opens a new session. Rejected while a previous one is still open.
func (uc *TimeClockUseCase) ClockIn(ctx context.Context, userID string) (*entity.TimeEntry, error) {
	open, err := uc.Entries.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to check open entry: " + err.Error()}
	}
	if open != nil {
		return nil, &DomainError{Code: "ALREADY_CLOCKED_IN", Message: "you are already clocked in"}
	}

	entry := entity.NewTimeEntry(userID, uc.Now())
	if err := uc.Entries.Create(ctx, entry); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create time entry: " + err.Error()}
	}

	uc.Logger.Info("clock-in", zap.String("user_id", userID), zap.String("entry_id", entry.ID))
	return entry, nil
}

// ClockOut closes the open session and stores the elapsed duration in hours.
func (uc *TimeClockUseCase) ClockOut(ctx context.Context, userID string) (*entity.TimeEntry, error) {
	open, err := uc.Entries.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to check open entry: " + err.Error()}
	}
	if open == nil {
		return nil, &DomainError{Code: "NOT_CLOCKED_IN", Message: "no open time entry to clock out of"}
	}

	open.Close(uc.Now())
	if err := uc.Entries.Update(ctx, open); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to close time entry: " + err.Error()}
	}

	uc.Logger.Info("clock-out",
		zap.String("user_id", userID),
		zap.String("entry_id", open.ID),
		zap.Float64p("hours", open.TotalHours))
	return open, nil
}

// DeleteEntries bulk-deletes entries, restricted to rows the caller owns.
func (uc *TimeClockUseCase) DeleteEntries(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return &DomainError{Code: "NO_IDS", Message: "no ids provided"}
	}
	if _, err := uc.Entries.DeleteOwnedByIDs(ctx, ids, userID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to delete entries: " + err.Error()}
	}
	return nil
}

// SetBreak updates the unpaid break on a single entry the caller owns.
func (uc *TimeClockUseCase) SetBreak(ctx context.Context, userID, entryID string, breakMinutes int) (*entity.TimeEntry, error) {
	if breakMinutes < 0 {
		return nil, &DomainError{Code: "INVALID_BREAK", Message: "breakMinutes must not be negative"}
	}

	entry, err := uc.Entries.FindOwnedByID(ctx, entryID, userID)
	if err != nil {
		if err == entity.ErrTimeEntryNotFound {
			return nil, err
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load entry: " + err.Error()}
	}

	entry.BreakMinutes = breakMinutes
	if err := uc.Entries.Update(ctx, entry); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update entry: " + err.Error()}
	}
	return entry, nil
}

// StartOfDay truncates to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek truncates to the Monday of t's ISO week, local midnight.
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -daysSinceMonday))
}
