package repository

import (
	"context"
	"errors"
	"time"

	"career-dash/internal/database"
	"career-dash/internal/database/postgres"
	"career-dash/internal/domain/application"

	"github.com/google/uuid"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Create(ctx context.Context, a application.Application) (application.Application, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListClosing(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]application.Application, error)
	ListClosingAll(ctx context.Context, from, to time.Time) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, userID uuid.UUID, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, name, student_name, company_name, email, role_applied, status, note,
	last_date_to_apply, applied_on, applied, created_at`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.StudentName, &a.CompanyName, &a.Email, &a.RoleApplied, &status, &a.Note,
		&a.LastDateToApply, &a.AppliedOn, &a.Applied, &a.CreatedAt,
	); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, name, student_name, company_name, email, role_applied, status, note,
			last_date_to_apply, applied_on, applied)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+applicationColumns,
		a.ID, a.UserID, a.Name, a.StudentName, a.CompanyName, a.Email, a.RoleApplied, string(a.Status), a.Note,
		a.LastDateToApply, a.AppliedOn, a.Applied,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ListClosing returns the user's applications whose last date to apply falls
// within [from, to], soonest first.
func (r *PostgresApplicationRepository) ListClosing(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE user_id = $1 AND last_date_to_apply BETWEEN $2 AND $3
		 ORDER BY last_date_to_apply ASC, name ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) ListClosingAll(ctx context.Context, from, to time.Time) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE last_date_to_apply BETWEEN $1 AND $2 AND NOT applied
		 ORDER BY user_id, last_date_to_apply ASC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, userID uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING `+applicationColumns,
		string(status), id, userID,
	)
	a, err := scanApplication(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}
