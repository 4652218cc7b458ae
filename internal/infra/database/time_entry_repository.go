package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/tridentevents/crm-api/internal/entity"
)

type TimeEntryRepository struct {
	DB *sql.DB
}

func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{DB: db}
}

const timeEntryColumns = `
	id, user_id, event_id, clock_in, clock_out, break_minutes, total_hours, created_at
`

func (r *TimeEntryRepository) Create(ctx context.Context, entry *entity.TimeEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO time_entries (id, user_id, event_id, clock_in, clock_out, break_minutes, total_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		entry.ID,
		entry.UserID,
		entry.EventID,
		entry.ClockIn,
		entry.ClockOut,
		entry.BreakMinutes,
		entry.TotalHours,
		entry.CreatedAt,
	)
	return err
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *entity.TimeEntry) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE time_entries
		SET clock_out = $1, break_minutes = $2, total_hours = $3
		WHERE id = $4
	`,
		entry.ClockOut,
		entry.BreakMinutes,
		entry.TotalHours,
		entry.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrTimeEntryNotFound)
}

// FindOpenByUser returns the most recent entry with no clock-out, or nil when
// the user is not clocked in.
func (r *TimeEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*entity.TimeEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE user_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`, userID)

	entry, err := scanTimeEntry(row)
	if errors.Is(err, entity.ErrTimeEntryNotFound) {
		return nil, nil
	}
	return entry, err
}

func (r *TimeEntryRepository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]*entity.TimeEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE user_id = $1 AND clock_in >= $2
		ORDER BY clock_in ASC
	`, userID, since)
}

func (r *TimeEntryRepository) FindByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*entity.TimeEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE user_id = $1 AND clock_in >= $2 AND clock_in < $3
		ORDER BY clock_in ASC
	`, userID, from, to)
}

func (r *TimeEntryRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.TimeEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE user_id = $1
		ORDER BY clock_in DESC
		LIMIT $2
	`, userID, limit)
}

func (r *TimeEntryRepository) FindByUsersSince(ctx context.Context, userIDs []string, since time.Time) ([]*entity.TimeEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE user_id = ANY($1) AND clock_in >= $2
		ORDER BY clock_in ASC
	`, pq.Array(userIDs), since)
}

func (r *TimeEntryRepository) FindOwnedByID(ctx context.Context, id, userID string) (*entity.TimeEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+timeEntryColumns+`
		FROM time_entries
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanTimeEntry(row)
}

// DeleteOwnedByIDs deletes only rows belonging to userID; ids owned by other
// users are silently skipped.
func (r *TimeEntryRepository) DeleteOwnedByIDs(ctx context.Context, ids []string, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM time_entries
		WHERE id = ANY($1) AND user_id = $2
	`, pq.Array(ids), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EventByID resolves the event a session was worked against, for display.
func (r *TimeEntryRepository) EventByID(ctx context.Context, eventID string) (*entity.Event, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID)
	return scanEvent(row)
}

func (r *TimeEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*entity.TimeEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanTimeEntry(row rowScanner) (*entity.TimeEntry, error) {
	var entry entity.TimeEntry
	var eventID sql.NullString
	var clockOut sql.NullTime
	var totalHours sql.NullFloat64

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&eventID,
		&entry.ClockIn,
		&clockOut,
		&entry.BreakMinutes,
		&totalHours,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTimeEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	if eventID.Valid {
		entry.EventID = &eventID.String
	}
	if clockOut.Valid {
		entry.ClockOut = &clockOut.Time
	}
	if totalHours.Valid {
		entry.TotalHours = &totalHours.Float64
	}

	return &entry, nil
}
