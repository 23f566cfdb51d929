package usecase

import (
	"context"
	"errors"

	"career-dash/internal/domain/ordering"
	"career-dash/internal/domain/skill"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var PriorityOrderMessages = ordering.Messages{
	SuccessTitle:   "Priorities Updated",
	SuccessMessage: "Your skill priorities are saved.",
	ErrorPrefix:    "Could not save priorities: ",
}

type SkillPriorityUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]ordering.Item[skill.Skill], error)
	Save(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) ([]ordering.Item[skill.Skill], error)
	Move(ctx context.Context, userID uuid.UUID, draggedID, targetID string) ([]ordering.Item[skill.Skill], bool, error)
	BoardSource(userID uuid.UUID) ordering.Source[skill.Skill]
	BoardUpdater(userID uuid.UUID) ordering.OrderUpdater
}

type SkillPriorities struct {
	list *orderedList[skill.Skill]
}

func NewSkillPriorityUsecase(repo repository.SkillRepository, cache ListCache, logger logrus.FieldLogger) *SkillPriorities {
	return &SkillPriorities{list: &orderedList[skill.Skill]{
		name:   listPriorities,
		cache:  cacheOrNoop(cache),
		logger: logger,
		fetch: func(ctx context.Context, userID uuid.UUID) ([]ordering.RawItem[skill.Skill], error) {
			items, err := repo.ListToLearn(ctx, userID)
			if err != nil {
				return nil, err
			}
			raw := make([]ordering.RawItem[skill.Skill], 0, len(items))
			for _, s := range items {
				raw = append(raw, ordering.RawItem[skill.Skill]{ID: s.ID.String(), OrderKey: s.Priority, Payload: s})
			}
			return raw, nil
		},
		persist: func(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
			err := repo.UpdatePriorities(ctx, userID, updates)
			if errors.Is(err, repository.ErrSkillNotFound) {
				return ErrNotFound
			}
			return err
		},
	}}
}

// List returns the user's to-learn skills in priority order, keyed 1..N.
func (u *SkillPriorities) List(ctx context.Context, userID uuid.UUID) ([]ordering.Item[skill.Skill], error) {
	return u.list.load(ctx, userID)
}

func (u *SkillPriorities) Save(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) ([]ordering.Item[skill.Skill], error) {
	return u.list.save(ctx, userID, updates)
}

func (u *SkillPriorities) Move(ctx context.Context, userID uuid.UUID, draggedID, targetID string) ([]ordering.Item[skill.Skill], bool, error) {
	return u.list.move(ctx, userID, draggedID, targetID)
}

func (u *SkillPriorities) BoardSource(userID uuid.UUID) ordering.Source[skill.Skill] {
	return u.list.source(userID)
}

func (u *SkillPriorities) BoardUpdater(userID uuid.UUID) ordering.OrderUpdater {
	return u.list.updater(userID)
}
