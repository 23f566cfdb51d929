package usecase

import (
	"context"
	"errors"

	"career-dash/internal/domain/application"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const DefaultClosingWindowDays = 7

type ReminderUsecase interface {
	ListClosing(ctx context.Context, userID uuid.UUID, days int) ([]application.Application, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, id uuid.UUID, status string) (application.Application, error)
}

type Reminders struct {
	repo       repository.ApplicationRepository
	clock      clockwork.Clock
	windowDays int
	logger     logrus.FieldLogger
}

func NewReminderUsecase(repo repository.ApplicationRepository, clock clockwork.Clock, windowDays int, logger logrus.FieldLogger) *Reminders {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if windowDays <= 0 {
		windowDays = DefaultClosingWindowDays
	}
	return &Reminders{repo: repo, clock: clock, windowDays: windowDays, logger: logger}
}

// ListClosing returns applications whose last date to apply is between today
// and today+days inclusive. A non-positive days falls back to the configured
// window.
func (u *Reminders) ListClosing(ctx context.Context, userID uuid.UUID, days int) ([]application.Application, error) {
	if days <= 0 {
		days = u.windowDays
	}
	from := dates.Day(u.clock.Now())
	to := from.AddDate(0, 0, days)

	items, err := u.repo.ListClosing(ctx, userID, from, to)
	if err != nil {
		u.logger.Errorf("[Reminders] list closing failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Reminders) UpdateStatus(ctx context.Context, userID uuid.UUID, id uuid.UUID, status string) (application.Application, error) {
	st, err := application.ParseUpdateStatus(status)
	if err != nil {
		return application.Application{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, id, userID, st)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		u.logger.Errorf("[Reminders] update status failed id=%s err=%v", id, err)
		return application.Application{}, ErrInternal
	}
	return updated, nil
}
