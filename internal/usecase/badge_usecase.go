package usecase

import (
	"context"
	"errors"

	"career-dash/internal/domain/badge"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

var ErrBadgeAlreadyEarned = errors.New("badge already earned")

var BadgeOrderMessages = ordering.Messages{
	SuccessTitle:   "Order Updated",
	SuccessMessage: "Your badges order is saved.",
	ErrorPrefix:    "Could not save order: ",
}

type BadgeUsecase interface {
	Catalog(ctx context.Context) ([]badge.Badge, error)
	List(ctx context.Context, userID uuid.UUID) ([]ordering.Item[badge.UserBadge], error)
	Award(ctx context.Context, userID uuid.UUID, badgeID uuid.UUID) (badge.UserBadge, error)
	Remove(ctx context.Context, userID uuid.UUID, userBadgeID uuid.UUID) error
	SaveOrder(ctx context.Context, userID uuid.UUID, userBadgeIDs []string) ([]ordering.Item[badge.UserBadge], error)
	Move(ctx context.Context, userID uuid.UUID, draggedID, targetID string) ([]ordering.Item[badge.UserBadge], bool, error)
	BoardSource(userID uuid.UUID) ordering.Source[badge.UserBadge]
	BoardUpdater(userID uuid.UUID) ordering.OrderUpdater
}

type Badges struct {
	repo   repository.BadgeRepository
	list   *orderedList[badge.UserBadge]
	clock  clockwork.Clock
	logger logrus.FieldLogger
}

func NewBadgeUsecase(repo repository.BadgeRepository, cache ListCache, clock clockwork.Clock, logger logrus.FieldLogger) *Badges {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Badges{
		repo:   repo,
		clock:  clock,
		logger: logger,
		list: &orderedList[badge.UserBadge]{
			name:   listBadges,
			cache:  cacheOrNoop(cache),
			logger: logger,
			fetch: func(ctx context.Context, userID uuid.UUID) ([]ordering.RawItem[badge.UserBadge], error) {
				items, err := repo.ListUserBadges(ctx, userID)
				if err != nil {
					return nil, err
				}
				raw := make([]ordering.RawItem[badge.UserBadge], 0, len(items))
				for _, ub := range items {
					raw = append(raw, ordering.RawItem[badge.UserBadge]{ID: ub.ID.String(), OrderKey: ub.DisplayOrder, Payload: ub})
				}
				return raw, nil
			},
			persist: func(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
				err := repo.UpdateDisplayOrder(ctx, userID, updates)
				if errors.Is(err, repository.ErrBadgeNotFound) {
					return ErrNotFound
				}
				return err
			},
		},
	}
}

func (u *Badges) Catalog(ctx context.Context) ([]badge.Badge, error) {
	items, err := u.repo.ListCatalog(ctx)
	if err != nil {
		u.logger.Errorf("[Badges] catalog failed err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Badges) List(ctx context.Context, userID uuid.UUID) ([]ordering.Item[badge.UserBadge], error) {
	return u.list.load(ctx, userID)
}

// Award grants a catalog badge to the user, dated today.
func (u *Badges) Award(ctx context.Context, userID uuid.UUID, badgeID uuid.UUID) (badge.UserBadge, error) {
	ub, err := u.repo.Award(ctx, userID, badgeID, dates.Day(u.clock.Now()))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBadgeNotFound):
			return badge.UserBadge{}, ErrNotFound
		case errors.Is(err, repository.ErrBadgeAlreadyOwned):
			return badge.UserBadge{}, ErrBadgeAlreadyEarned
		}
		u.logger.Errorf("[Badges] award failed user_id=%s badge_id=%s err=%v", userID, badgeID, err)
		return badge.UserBadge{}, ErrInternal
	}
	u.list.invalidate(ctx, userID)
	return ub, nil
}

func (u *Badges) Remove(ctx context.Context, userID uuid.UUID, userBadgeID uuid.UUID) error {
	if err := u.repo.DeleteUserBadge(ctx, userBadgeID, userID); err != nil {
		if errors.Is(err, repository.ErrBadgeNotFound) {
			return ErrNotFound
		}
		u.logger.Errorf("[Badges] remove failed id=%s err=%v", userBadgeID, err)
		return ErrInternal
	}
	u.list.invalidate(ctx, userID)
	return nil
}

// SaveOrder persists the grid order given as the full list of user badge
// ids, first to last.
func (u *Badges) SaveOrder(ctx context.Context, userID uuid.UUID, userBadgeIDs []string) ([]ordering.Item[badge.UserBadge], error) {
	updates := make([]ordering.OrderUpdate, 0, len(userBadgeIDs))
	for i, id := range userBadgeIDs {
		updates = append(updates, ordering.OrderUpdate{ID: id, OrderKey: i + 1})
	}
	return u.list.save(ctx, userID, updates)
}

func (u *Badges) Move(ctx context.Context, userID uuid.UUID, draggedID, targetID string) ([]ordering.Item[badge.UserBadge], bool, error) {
	return u.list.move(ctx, userID, draggedID, targetID)
}

func (u *Badges) BoardSource(userID uuid.UUID) ordering.Source[badge.UserBadge] {
	return u.list.source(userID)
}

func (u *Badges) BoardUpdater(userID uuid.UUID) ordering.OrderUpdater {
	return u.list.updater(userID)
}
