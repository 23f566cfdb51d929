package repository

import (
	"context"
	"errors"
	"time"

	"career-dash/internal/database"
	"career-dash/internal/database/postgres"
	"career-dash/internal/domain/badge"
	"career-dash/internal/domain/ordering"

	"github.com/google/uuid"
)

var (
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrBadgeAlreadyOwned = errors.New("badge already earned")
)

type BadgeRepository interface {
	ListCatalog(ctx context.Context) ([]badge.Badge, error)
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]badge.UserBadge, error)
	Award(ctx context.Context, userID uuid.UUID, badgeID uuid.UUID, earned time.Time) (badge.UserBadge, error)
	DeleteUserBadge(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdateDisplayOrder(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error
}

type PostgresBadgeRepository struct {
	db database.DB
}

func NewPostgresBadgeRepository(db database.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

func (r *PostgresBadgeRepository) ListCatalog(ctx context.Context) ([]badge.Badge, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, icon_url, created_at FROM badges ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.Badge, 0)
	for rows.Next() {
		var b badge.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.IconURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const userBadgeSelect = `SELECT ub.id, ub.user_id, ub.badge_id, b.name, b.description, b.icon_url, ub.earned_date, ub.display_order
	FROM user_badges ub
	JOIN badges b ON b.id = ub.badge_id`

func scanUserBadge(row database.Row) (badge.UserBadge, error) {
	var ub badge.UserBadge
	err := row.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.Name, &ub.Description, &ub.IconURL, &ub.EarnedDate, &ub.DisplayOrder)
	return ub, err
}

// ListUserBadges returns the user's badges in display order; badges never
// ordered come last, newest first.
func (r *PostgresBadgeRepository) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]badge.UserBadge, error) {
	rows, err := r.db.Query(ctx,
		userBadgeSelect+`
		 WHERE ub.user_id = $1
		 ORDER BY ub.display_order ASC NULLS LAST, ub.earned_date DESC NULLS LAST, b.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.UserBadge, 0)
	for rows.Next() {
		ub, err := scanUserBadge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBadgeRepository) Award(ctx context.Context, userID uuid.UUID, badgeID uuid.UUID, earned time.Time) (badge.UserBadge, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_badges (id, user_id, badge_id, earned_date) VALUES ($1, $2, $3, $4)`,
		id, userID, badgeID, earned,
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return badge.UserBadge{}, ErrBadgeAlreadyOwned
		case postgres.IsForeignKeyViolation(err):
			return badge.UserBadge{}, ErrBadgeNotFound
		}
		return badge.UserBadge{}, err
	}

	ub, err := scanUserBadge(r.db.QueryRow(ctx, userBadgeSelect+` WHERE ub.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return badge.UserBadge{}, ErrBadgeNotFound
		}
		return badge.UserBadge{}, err
	}
	return ub, nil
}

func (r *PostgresBadgeRepository) DeleteUserBadge(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM user_badges WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBadgeNotFound
	}
	return nil
}

func (r *PostgresBadgeRepository) UpdateDisplayOrder(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, u := range updates {
			id, err := uuid.Parse(u.ID)
			if err != nil {
				return ErrBadgeNotFound
			}
			affected, err := tx.Exec(ctx,
				`UPDATE user_badges SET display_order = $1 WHERE id = $2 AND user_id = $3`,
				u.OrderKey, id, userID,
			)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrBadgeNotFound
			}
		}
		return nil
	})
}
