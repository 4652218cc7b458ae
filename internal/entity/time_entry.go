package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one clock-in/clock-out session. An entry with a nil ClockOut is
// "open"; at most one open entry may exist per user at a time.
type TimeEntry struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	EventID      *string    `json:"event_id,omitempty"`
	ClockIn      time.Time  `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`
	BreakMinutes int        `json:"break_minutes"`
	TotalHours   *float64   `json:"total_hours,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewTimeEntry(userID string, clockIn time.Time) *TimeEntry {
	return &TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ClockIn:   clockIn,
		CreatedAt: clockIn,
	}
}

func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// Close stamps the clock-out time and derives the raw session length in hours.
func (e *TimeEntry) Close(clockOut time.Time) {
	e.ClockOut = &clockOut
	hours := clockOut.Sub(e.ClockIn).Hours()
	e.TotalHours = &hours
}

// WorkedHours is the session length up to "now" for open entries, with the
// unpaid break subtracted and floored at zero.
func (e *TimeEntry) WorkedHours(now time.Time) float64 {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}

	h := end.Sub(e.ClockIn).Hours()
	h -= float64(e.BreakMinutes) / 60.0
	if h < 0 {
		h = 0
	}
	return h
}

// RawHours is the session length without break subtraction.
func (e *TimeEntry) RawHours(now time.Time) float64 {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	return end.Sub(e.ClockIn).Hours()
}
