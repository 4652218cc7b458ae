package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tridentevents/crm-api/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `
	id, name, type, date, start_time, end_time, location, address, city,
	client_name, client_email, client_phone, guest_count, services,
	total_price, deposit, is_paid, notes, internal_notes, status, lead_id,
	created_at, updated_at
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEvent(ctx context.Context, db execer, event *entity.Event) error {
	query := `
		INSERT INTO events (
			id, name, type, date, start_time, end_time, location, address, city,
			client_name, client_email, client_phone, guest_count, services,
			total_price, deposit, is_paid, notes, internal_notes, status, lead_id,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''),
			$10, NULLIF($11, ''), NULLIF($12, ''), $13, $14,
			$15, $16, $17, NULLIF($18, ''), NULLIF($19, ''), $20, $21,
			$22, $23
		)
	`

	_, err := db.ExecContext(ctx, query,
		event.ID,
		event.Name,
		event.Type,
		event.Date,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.Address,
		event.City,
		event.ClientName,
		event.ClientEmail,
		event.ClientPhone,
		event.GuestCount,
		pq.Array(event.Services),
		event.TotalPrice,
		event.Deposit,
		event.IsPaid,
		event.Notes,
		event.InternalNotes,
		event.Status,
		event.LeadID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// CreateWithAssignments writes the event row and its assignment rows in one
// transaction.
func (r *EventRepository) CreateWithAssignments(ctx context.Context, event *entity.Event, assignments []entity.EventAssignment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO event_assignments (id, event_id, user_id, role, is_confirmed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.EventID, a.UserID, a.Role, a.IsConfirmed, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	return tx.Commit()
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

func (r *EventRepository) ListAll(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	var event entity.Event
	var address, city, clientEmail, clientPhone, notes, internalNotes, leadID sql.NullString
	var guestCount sql.NullInt64
	var totalPrice, deposit sql.NullFloat64

	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Type,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.Location,
		&address,
		&city,
		&event.ClientName,
		&clientEmail,
		&clientPhone,
		&guestCount,
		pq.Array(&event.Services),
		&totalPrice,
		&deposit,
		&event.IsPaid,
		&notes,
		&internalNotes,
		&event.Status,
		&leadID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	event.Address = address.String
	event.City = city.String
	event.ClientEmail = clientEmail.String
	event.ClientPhone = clientPhone.String
	if guestCount.Valid {
		n := int(guestCount.Int64)
		event.GuestCount = &n
	}
	if totalPrice.Valid {
		event.TotalPrice = &totalPrice.Float64
	}
	if deposit.Valid {
		event.Deposit = &deposit.Float64
	}
	event.Notes = notes.String
	event.InternalNotes = internalNotes.String
	if leadID.Valid {
		event.LeadID = &leadID.String
	}
	if event.Services == nil {
		event.Services = []string{}
	}

	return &event, nil
}
