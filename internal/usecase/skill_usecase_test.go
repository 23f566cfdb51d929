package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-dash/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

func validSkillInput() SkillInput {
	return SkillInput{
		Name:             "Kubernetes",
		SkillType:        "To Learn",
		ProficiencyLevel: "Beginner",
		CompletionStatus: "Not Started",
		StartDate:        "2025-01-06",
	}
}

func TestSkills_CreateRequiresFields(t *testing.T) {
	uc := NewSkillUsecase(&fakeSkillRepo{}, nil, testLogger)

	in := validSkillInput()
	in.ProficiencyLevel = ""
	if _, err := uc.Create(context.Background(), uuid.New(), in); !errors.Is(err, skill.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}

	in = validSkillInput()
	in.SkillType = "Someday"
	if _, err := uc.Create(context.Background(), uuid.New(), in); !errors.Is(err, skill.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSkills_CreateReminder(t *testing.T) {
	repo := &fakeSkillRepo{}
	cache := newMemCache()
	uc := NewSkillUsecase(repo, cache, testLogger)
	userID := uuid.New()

	in := validSkillInput()
	in.ReminderNeeded = true
	in.ReminderFrequency = "Monthly"
	if _, err := uc.Create(context.Background(), userID, in); !errors.Is(err, skill.ErrReminderEmail) {
		t.Fatalf("expected ErrReminderEmail, got %v", err)
	}

	in.ReminderEmail = "me@uni.edu"
	in.NextReminderDate = "2025-02-01"
	created, err := uc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Reminder.Frequency != skill.FrequencyMonthly || created.Reminder.NextDate == nil {
		t.Fatalf("unexpected reminder %+v", created.Reminder)
	}
	found := false
	for _, k := range cache.deletes {
		if k == PrioritiesCacheKey(userID) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected priorities cache invalidated, deletes=%v", cache.deletes)
	}
}

func TestSkills_CreateWithoutReminderDropsReminderFields(t *testing.T) {
	uc := NewSkillUsecase(&fakeSkillRepo{}, nil, testLogger)

	in := validSkillInput()
	in.ReminderFrequency = "Weekly"
	in.ReminderEmail = "me@uni.edu"
	created, err := uc.Create(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Reminder != (skill.Reminder{}) {
		t.Fatalf("expected empty reminder, got %+v", created.Reminder)
	}
}

func TestSkillUpdates_ListDecoratesCountdown(t *testing.T) {
	userID := uuid.New()
	repo := &fakeSkillRepo{items: []skill.Skill{
		{ID: uuid.New(), UserID: userID, Name: "Go", EndDate: datePtr(2025, 3, 4)},
		{ID: uuid.New(), UserID: userID, Name: "Rust"},
	}}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	uc := NewSkillUpdateUsecase(repo, nil, clock, testLogger)

	items, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if items[0].Countdown.DaysRemaining != 3 || items[0].Countdown.Class != skill.ClassRed {
		t.Fatalf("unexpected countdown %+v", items[0].Countdown)
	}
	if items[1].Countdown.DaysRemaining != -1 || items[1].Countdown.Text != "No end date" {
		t.Fatalf("unexpected countdown %+v", items[1].Countdown)
	}
}

func TestSkillUpdates_SetField(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	repo := &fakeSkillRepo{items: []skill.Skill{{ID: id, UserID: userID, Type: skill.TypeLearned, CompletionStatus: skill.CompletionInProgress}}}
	uc := NewSkillUpdateUsecase(repo, nil, clockwork.NewFakeClock(), testLogger)

	if _, err := uc.SetField(context.Background(), userID, id, "name", "x"); !errors.Is(err, skill.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	got, err := uc.SetField(context.Background(), userID, id, "completion_status", "Achieved")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Skill.CompletionStatus != skill.CompletionAchieved {
		t.Fatalf("unexpected status %q", got.Skill.CompletionStatus)
	}

	if _, err := uc.SetField(context.Background(), userID, uuid.New(), "skill_type", "Learned"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillUpdates_SaveBatch(t *testing.T) {
	userID := uuid.New()
	a, b := uuid.New(), uuid.New()
	repo := &fakeSkillRepo{items: []skill.Skill{
		{ID: a, UserID: userID, Type: skill.TypeToLearn, CompletionStatus: skill.CompletionNotStarted},
		{ID: b, UserID: userID, Type: skill.TypeToLearn, CompletionStatus: skill.CompletionNotStarted},
	}}
	uc := NewSkillUpdateUsecase(repo, nil, clockwork.NewFakeClock(), testLogger)

	err := uc.SaveBatch(context.Background(), userID, []SkillBatchUpdate{
		{ID: a, SkillType: "Learned", CompletionStatus: "Achieved"},
		{ID: b, CompletionStatus: "In Progress"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.items[0].Type != skill.TypeLearned || repo.items[0].CompletionStatus != skill.CompletionAchieved {
		t.Fatalf("unexpected first skill %+v", repo.items[0])
	}
	if repo.items[1].Type != skill.TypeToLearn || repo.items[1].CompletionStatus != skill.CompletionInProgress {
		t.Fatalf("unexpected second skill %+v", repo.items[1])
	}

	err = uc.SaveBatch(context.Background(), userID, []SkillBatchUpdate{{ID: a, CompletionStatus: "Done"}})
	if !errors.Is(err, skill.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if err := uc.SaveBatch(context.Background(), userID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}

func TestSkillUpdates_SetFieldRefreshesCachedPriorities(t *testing.T) {
	userID := uuid.New()
	repo, ids := priorityFixture(userID)
	repo.items[0].CompletionStatus = skill.CompletionNotStarted
	cache := newMemCache()
	priorities := NewSkillPriorityUsecase(repo, cache, testLogger)
	updates := NewSkillUpdateUsecase(repo, cache, clockwork.NewFakeClock(), testLogger)

	if _, err := priorities.List(context.Background(), userID); err != nil {
		t.Fatalf("list: %v", err)
	}
	lockKey := OrderLockKey(userID, listPriorities)
	if ok, _ := cache.SetIfNotExists(context.Background(), lockKey, "held", time.Minute); !ok {
		t.Fatalf("expected lock acquired")
	}

	if _, err := updates.SetField(context.Background(), userID, ids[0], "completion_status", "Achieved"); err != nil {
		t.Fatalf("set field: %v", err)
	}

	items, err := priorities.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].Payload.CompletionStatus != skill.CompletionAchieved {
		t.Fatalf("expected fresh payload, got %q", items[0].Payload.CompletionStatus)
	}
	if ok, _ := cache.SetIfNotExists(context.Background(), lockKey, "other", time.Minute); ok {
		t.Fatalf("expected order lock untouched by cache invalidation")
	}
}
