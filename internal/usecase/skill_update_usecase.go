package usecase

import (
	"context"
	"errors"

	"career-dash/internal/domain/skill"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type SkillWithCountdown struct {
	Skill     skill.Skill
	Countdown skill.Countdown
}

// SkillBatchUpdate is one row of the update panel's batch save.
type SkillBatchUpdate struct {
	ID               uuid.UUID
	SkillType        string
	CompletionStatus string
}

type SkillUpdateUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]SkillWithCountdown, error)
	SetField(ctx context.Context, userID uuid.UUID, id uuid.UUID, field, value string) (SkillWithCountdown, error)
	SaveBatch(ctx context.Context, userID uuid.UUID, updates []SkillBatchUpdate) error
}

type SkillUpdates struct {
	repo   repository.SkillRepository
	cache  ListCache
	clock  clockwork.Clock
	logger logrus.FieldLogger
}

func NewSkillUpdateUsecase(repo repository.SkillRepository, cache ListCache, clock clockwork.Clock, logger logrus.FieldLogger) *SkillUpdates {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SkillUpdates{repo: repo, cache: cacheOrNoop(cache), clock: clock, logger: logger}
}

func (u *SkillUpdates) List(ctx context.Context, userID uuid.UUID) ([]SkillWithCountdown, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Errorf("[SkillUpdates] list failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}

	today := u.clock.Now()
	out := make([]SkillWithCountdown, 0, len(items))
	for _, s := range items {
		out = append(out, SkillWithCountdown{Skill: s, Countdown: skill.CountdownFor(s.EndDate, today)})
	}
	return out, nil
}

func (u *SkillUpdates) SetField(ctx context.Context, userID uuid.UUID, id uuid.UUID, field, value string) (SkillWithCountdown, error) {
	s, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return SkillWithCountdown{}, ErrNotFound
		}
		return SkillWithCountdown{}, ErrInternal
	}

	if err := s.SetField(field, value); err != nil {
		return SkillWithCountdown{}, err
	}

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return SkillWithCountdown{}, ErrNotFound
		}
		u.logger.Errorf("[SkillUpdates] update failed id=%s field=%s err=%v", id, field, err)
		return SkillWithCountdown{}, ErrInternal
	}
	u.invalidate(ctx, userID)
	return SkillWithCountdown{Skill: updated, Countdown: skill.CountdownFor(updated.EndDate, u.clock.Now())}, nil
}

// SaveBatch applies skill type and completion status edits for several
// skills at once. Fields left blank keep their stored value.
func (u *SkillUpdates) SaveBatch(ctx context.Context, userID uuid.UUID, updates []SkillBatchUpdate) error {
	if len(updates) == 0 {
		return ErrInvalidInput
	}

	current, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return ErrInternal
	}
	byID := make(map[uuid.UUID]skill.Skill, len(current))
	for _, s := range current {
		byID[s.ID] = s
	}

	edited := make([]skill.Skill, 0, len(updates))
	for _, up := range updates {
		s, ok := byID[up.ID]
		if !ok {
			return ErrNotFound
		}
		if up.SkillType != "" {
			if err := s.SetField("skill_type", up.SkillType); err != nil {
				return err
			}
		}
		if up.CompletionStatus != "" {
			if err := s.SetField("completion_status", up.CompletionStatus); err != nil {
				return err
			}
		}
		edited = append(edited, s)
	}

	if err := u.repo.UpdateMany(ctx, userID, edited); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrNotFound
		}
		u.logger.Errorf("[SkillUpdates] batch update failed user_id=%s err=%v", userID, err)
		return ErrInternal
	}
	u.invalidate(ctx, userID)
	return nil
}

// invalidate drops every cached list of the user, since cached items carry
// the full skill payload.
func (u *SkillUpdates) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.DeleteByPattern(ctx, UserCachePattern(userID)); err != nil {
		u.logger.Warnf("[SkillUpdates] cache invalidate failed user_id=%s err=%v", userID, err)
	}
}
