package usecase

import (
	"context"
	"errors"
	"strings"

	"career-dash/internal/domain/skill"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SkillInput is a skill as submitted by the tracker form, before parsing.
type SkillInput struct {
	Name              string
	SkillType         string
	ProficiencyLevel  string
	CompletionStatus  string
	StartDate         string
	EndDate           string
	ReasonToLearn     string
	ReminderNeeded    bool
	ReminderFrequency string
	NextReminderDate  string
	ReminderEmail     string
}

type SkillUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	Create(ctx context.Context, userID uuid.UUID, in SkillInput) (skill.Skill, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Skills struct {
	repo   repository.SkillRepository
	cache  ListCache
	logger logrus.FieldLogger
}

func NewSkillUsecase(repo repository.SkillRepository, cache ListCache, logger logrus.FieldLogger) *Skills {
	return &Skills{repo: repo, cache: cacheOrNoop(cache), logger: logger}
}

func (u *Skills) List(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Errorf("[Skills] list failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skills) Create(ctx context.Context, userID uuid.UUID, in SkillInput) (skill.Skill, error) {
	s, err := parseSkillInput(in)
	if err != nil {
		return skill.Skill{}, err
	}
	if err := s.Validate(); err != nil {
		return skill.Skill{}, err
	}
	s.ID = uuid.New()
	s.UserID = userID

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		u.logger.Errorf("[Skills] create failed user_id=%s err=%v", userID, err)
		return skill.Skill{}, ErrInternal
	}
	u.invalidate(ctx, userID)
	return created, nil
}

func (u *Skills) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrNotFound
		}
		u.logger.Errorf("[Skills] delete failed id=%s err=%v", id, err)
		return ErrInternal
	}
	u.invalidate(ctx, userID)
	return nil
}

func (u *Skills) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.Delete(ctx, PrioritiesCacheKey(userID)); err != nil {
		u.logger.Warnf("[Skills] cache invalidate failed user_id=%s err=%v", userID, err)
	}
}

// parseSkillInput maps form values onto a skill. Blank enum values are left
// empty so Validate reports them as missing; unknown values are rejected.
func parseSkillInput(in SkillInput) (skill.Skill, error) {
	s := skill.Skill{
		Name:          in.Name,
		ReasonToLearn: strings.TrimSpace(in.ReasonToLearn),
	}

	var err error
	if strings.TrimSpace(in.SkillType) != "" {
		if s.Type, err = skill.ParseType(in.SkillType); err != nil {
			return skill.Skill{}, err
		}
	}
	if strings.TrimSpace(in.ProficiencyLevel) != "" {
		if s.Proficiency, err = skill.ParseProficiency(in.ProficiencyLevel); err != nil {
			return skill.Skill{}, err
		}
	}
	if strings.TrimSpace(in.CompletionStatus) != "" {
		if s.CompletionStatus, err = skill.ParseCompletionStatus(in.CompletionStatus); err != nil {
			return skill.Skill{}, err
		}
	}
	if s.StartDate, err = dates.ParseOptional(in.StartDate); err != nil {
		return skill.Skill{}, err
	}
	if s.EndDate, err = dates.ParseOptional(in.EndDate); err != nil {
		return skill.Skill{}, err
	}

	if in.ReminderNeeded {
		s.Reminder.Needed = true
		s.Reminder.Email = in.ReminderEmail
		if s.Reminder.Frequency, err = skill.ParseReminderFrequency(in.ReminderFrequency); err != nil {
			return skill.Skill{}, err
		}
		if s.Reminder.NextDate, err = dates.ParseOptional(in.NextReminderDate); err != nil {
			return skill.Skill{}, err
		}
	}
	return s, nil
}
