package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tridentevents/crm-api/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `
	id, external_id, first_name, last_name, email, phone, role,
	employment_type, job_title, hourly_rate, state, created_at, updated_at
`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
	return scanUser(row)
}

func (r *UserRepository) ListActive(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE state = $1 ORDER BY first_name, last_name`,
		entity.UserStateActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone = NULLIF($4, ''),
			role = $5, employment_type = $6, job_title = NULLIF($7, ''),
			hourly_rate = $8, state = $9, updated_at = NOW()
		WHERE id = $10
	`,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Role,
		user.EmploymentType,
		user.JobTitle,
		user.HourlyRate,
		user.State,
		user.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrUserNotFound)
}

func (r *UserRepository) SetState(ctx context.Context, id string, state entity.UserState) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET state = $1, updated_at = NOW() WHERE id = $2`, state, id)
	if err != nil {
		return err
	}
	return requireRow(res, entity.ErrUserNotFound)
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	var phone, jobTitle sql.NullString
	var hourlyRate sql.NullFloat64

	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&phone,
		&user.Role,
		&user.EmploymentType,
		&jobTitle,
		&hourlyRate,
		&user.State,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Phone = phone.String
	user.JobTitle = jobTitle.String
	if hourlyRate.Valid {
		user.HourlyRate = &hourlyRate.Float64
	}

	return &user, nil
}
