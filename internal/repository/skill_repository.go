package repository

import (
	"context"
	"errors"
	"time"

	"career-dash/internal/database"
	"career-dash/internal/database/postgres"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Update(ctx context.Context, s skill.Skill) (skill.Skill, error)
	UpdateMany(ctx context.Context, userID uuid.UUID, skills []skill.Skill) error

	ListToLearn(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	UpdatePriorities(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error

	ListDueReminders(ctx context.Context, day time.Time) ([]skill.Skill, error)
	AdvanceReminder(ctx context.Context, id uuid.UUID, next time.Time) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, user_id, name, skill_type, proficiency_level, completion_status, start_date, end_date,
	reason_to_learn, reminder_needed, reminder_frequency, next_reminder_date, reminder_email, priority,
	created_at, updated_at`

func scanSkill(row database.Row) (skill.Skill, error) {
	var (
		s                        skill.Skill
		typ, proficiency, status string
		frequency, email         *string
	)
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &typ, &proficiency, &status, &s.StartDate, &s.EndDate,
		&s.ReasonToLearn, &s.Reminder.Needed, &frequency, &s.Reminder.NextDate, &email, &s.Priority,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return skill.Skill{}, err
	}
	s.Type = skill.Type(typ)
	s.Proficiency = skill.Proficiency(proficiency)
	s.CompletionStatus = skill.CompletionStatus(status)
	if frequency != nil {
		s.Reminder.Frequency = skill.ReminderFrequency(*frequency)
	}
	if email != nil {
		s.Reminder.Email = *email
	}
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *PostgresSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	s, err := scanSkill(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, user_id, name, skill_type, proficiency_level, completion_status, start_date, end_date,
			reason_to_learn, reminder_needed, reminder_frequency, next_reminder_date, reminder_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+skillColumns,
		s.ID, s.UserID, s.Name, string(s.Type), string(s.Proficiency), string(s.CompletionStatus), s.StartDate, s.EndDate,
		s.ReasonToLearn, s.Reminder.Needed, nullable(string(s.Reminder.Frequency)), s.Reminder.NextDate, nullable(s.Reminder.Email),
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

const updateEditableSQL = `UPDATE skills
	SET skill_type = $1, proficiency_level = $2, completion_status = $3, reason_to_learn = $4, updated_at = now()
	WHERE id = $5 AND user_id = $6`

// Update persists the fields the update panel can edit.
func (r *PostgresSkillRepository) Update(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	affected, err := r.db.Exec(ctx, updateEditableSQL,
		string(s.Type), string(s.Proficiency), string(s.CompletionStatus), s.ReasonToLearn, s.ID, s.UserID,
	)
	if err != nil {
		return skill.Skill{}, err
	}
	if affected == 0 {
		return skill.Skill{}, ErrSkillNotFound
	}
	return r.GetByID(ctx, s.ID, s.UserID)
}

// UpdateMany saves a batch of edits atomically; one missing skill aborts the batch.
func (r *PostgresSkillRepository) UpdateMany(ctx context.Context, userID uuid.UUID, skills []skill.Skill) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, s := range skills {
			affected, err := tx.Exec(ctx, updateEditableSQL,
				string(s.Type), string(s.Proficiency), string(s.CompletionStatus), s.ReasonToLearn, s.ID, userID,
			)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrSkillNotFound
			}
		}
		return nil
	})
}

func (r *PostgresSkillRepository) ListToLearn(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills
		 WHERE user_id = $1 AND skill_type = $2
		 ORDER BY priority ASC NULLS LAST, created_at ASC`,
		userID, string(skill.TypeToLearn),
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) UpdatePriorities(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, u := range updates {
			id, err := uuid.Parse(u.ID)
			if err != nil {
				return ErrSkillNotFound
			}
			affected, err := tx.Exec(ctx,
				`UPDATE skills SET priority = $1, updated_at = now() WHERE id = $2 AND user_id = $3`,
				u.OrderKey, id, userID,
			)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrSkillNotFound
			}
		}
		return nil
	})
}

// ListDueReminders returns every skill, across users, whose next reminder
// date is on or before day.
func (r *PostgresSkillRepository) ListDueReminders(ctx context.Context, day time.Time) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills
		 WHERE reminder_needed AND next_reminder_date IS NOT NULL AND next_reminder_date <= $1
		 ORDER BY next_reminder_date ASC`,
		day,
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) AdvanceReminder(ctx context.Context, id uuid.UUID, next time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET next_reminder_date = $1, updated_at = now() WHERE id = $2`,
		next, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}
