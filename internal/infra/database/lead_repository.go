package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tridentevents/crm-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, client_name, client_email, client_phone, event_name, event_type,
	event_date, event_location, notes, status, source,
	assigned_to_id, converted_to_event_id, created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, client_name, client_email, client_phone, event_name, event_type,
			event_date, event_location, notes, status, source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.ClientName,
		lead.ClientEmail,
		lead.ClientPhone,
		lead.EventName,
		lead.EventType,
		lead.EventDate,
		lead.EventLocation,
		lead.Notes,
		lead.Status,
		lead.Source,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

func (r *LeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET assigned_to_id = $1, updated_at = NOW() WHERE id = $2`, assigneeID, id)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

// CreateConvertedEvent inserts the generated event, links the lead to it and
// moves the lead to status, all under one transaction so a lead never points
// at an event that is not there.
func (r *LeadRepository) CreateConvertedEvent(ctx context.Context, leadID string, event *entity.Event, status entity.LeadStatus) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to insert converted event: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE leads
		SET status = $1, converted_to_event_id = $2, updated_at = NOW()
		WHERE id = $3
	`, status, event.ID, leadID)
	if err != nil {
		return fmt.Errorf("failed to link lead to event: %w", err)
	}
	if err := requireRow(res, entity.ErrLeadNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteConvertedEvent tears down the linked event with its assignments and
// time entries and clears the lead's link, all under one transaction.
func (r *LeadRepository) DeleteConvertedEvent(ctx context.Context, leadID, eventID string, status entity.LeadStatus) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_assignments WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event time entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE leads
		SET status = $1, converted_to_event_id = NULL, updated_at = NOW()
		WHERE id = $2
	`, status, leadID)
	if err != nil {
		return fmt.Errorf("failed to unlink lead: %w", err)
	}
	if err := requireRow(res, entity.ErrLeadNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

// FindStaleFollowUps returns FOLLOW_UP leads not touched since the cutoff,
// oldest first. Used by the digest job.
func (r *LeadRepository) FindStaleFollowUps(ctx context.Context, cutoff time.Time) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC
	`, entity.LeadStatusFollowUp, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var eventDate sql.NullTime
	var eventLocation, notes, assignedTo, convertedTo sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.ClientName,
		&lead.ClientEmail,
		&lead.ClientPhone,
		&lead.EventName,
		&lead.EventType,
		&eventDate,
		&eventLocation,
		&notes,
		&lead.Status,
		&lead.Source,
		&assignedTo,
		&convertedTo,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	if eventDate.Valid {
		lead.EventDate = &eventDate.Time
	}
	lead.EventLocation = eventLocation.String
	lead.Notes = notes.String
	if assignedTo.Valid {
		lead.AssignedToID = &assignedTo.String
	}
	if convertedTo.Valid {
		lead.ConvertedToEventID = &convertedTo.String
	}

	return &lead, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
