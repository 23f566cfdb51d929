package usecase

import (
	"context"
	"errors"

	"career-dash/internal/domain/application"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ApplicationUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	Create(ctx context.Context, userID uuid.UUID, a application.Application) (application.Application, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Applications struct {
	repo   repository.ApplicationRepository
	logger logrus.FieldLogger
}

func NewApplicationUsecase(repo repository.ApplicationRepository, logger logrus.FieldLogger) *Applications {
	return &Applications{repo: repo, logger: logger}
}

func (u *Applications) List(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Errorf("[Applications] list failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

// Create validates and stores a new application. Validation errors from the
// domain package are returned as-is so the handler can pick the message.
func (u *Applications) Create(ctx context.Context, userID uuid.UUID, a application.Application) (application.Application, error) {
	if err := a.Validate(); err != nil {
		return application.Application{}, err
	}
	a.ID = uuid.New()
	a.UserID = userID

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		u.logger.Errorf("[Applications] create failed user_id=%s err=%v", userID, err)
		return application.Application{}, ErrInternal
	}
	return created, nil
}

func (u *Applications) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrNotFound
		}
		u.logger.Errorf("[Applications] delete failed id=%s err=%v", id, err)
		return ErrInternal
	}
	return nil
}
