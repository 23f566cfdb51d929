package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"career-dash/internal/config"
	"career-dash/internal/domain/application"
	"career-dash/internal/domain/notification"
	"career-dash/internal/domain/skill"
	"career-dash/internal/infrastructure/pubsub"
	"career-dash/internal/repository"
	"career-dash/internal/usecase"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type fakeSkills struct {
	repository.SkillRepository
	mu       sync.Mutex
	due      []skill.Skill
	dueDay   time.Time
	advanced map[uuid.UUID]time.Time
}

func (f *fakeSkills) ListDueReminders(_ context.Context, day time.Time) ([]skill.Skill, error) {
	f.dueDay = day
	return f.due, nil
}

func (f *fakeSkills) AdvanceReminder(_ context.Context, id uuid.UUID, next time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.advanced == nil {
		f.advanced = map[uuid.UUID]time.Time{}
	}
	f.advanced[id] = next
	return nil
}

type fakeApps struct {
	repository.ApplicationRepository
	closing  []application.Application
	from, to time.Time
	err      error
}

func (f *fakeApps) ListClosingAll(_ context.Context, from, to time.Time) ([]application.Application, error) {
	f.from, f.to = from, to
	return f.closing, f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []pubsub.Event
	failOn string
}

func (f *fakePublisher) Publish(_ context.Context, ev pubsub.Event) error {
	if ev.UserID == f.failOn {
		return errors.New("redis down")
	}
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

type fakeCache struct {
	mu       sync.Mutex
	patterns []string
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	f.patterns = append(f.patterns, pattern)
	f.mu.Unlock()
	return nil
}

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestDispatcher_Run(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC))
	learner := uuid.New()
	sk := skill.Skill{
		ID:               uuid.New(),
		UserID:           learner,
		Name:             "Go",
		CompletionStatus: skill.CompletionStatus("In Progress"),
		Reminder:         skill.Reminder{Needed: true, Frequency: skill.FrequencyWeekly, NextDate: day("2026-03-10")},
	}
	app := application.Application{ID: uuid.New(), UserID: learner, Name: "Intern", CompanyName: "Acme", LastDateToApply: day("2026-03-12")}

	skills := &fakeSkills{due: []skill.Skill{sk}}
	apps := &fakeApps{closing: []application.Application{app}}
	pub := &fakePublisher{}
	cache := &fakeCache{}
	d := NewDispatcher(skills, apps, pub, cache, config.ReminderConfig{DaysAhead: 7, Workers: 2}, clock, nil)

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.SkillReminders != 1 || sum.ClosingApplications != 1 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !skills.dueDay.Equal(*day("2026-03-10")) {
		t.Fatalf("expected due lookup for today, got %v", skills.dueDay)
	}
	if !apps.to.Equal(*day("2026-03-17")) {
		t.Fatalf("expected window end 2026-03-17, got %v", apps.to)
	}
	if next := skills.advanced[sk.ID]; !next.Equal(*day("2026-03-17")) {
		t.Fatalf("expected reminder advanced a week, got %v", next)
	}
	if len(cache.patterns) != 1 || cache.patterns[0] != usecase.UserCachePattern(learner) {
		t.Fatalf("expected the learner's cached lists dropped, got %v", cache.patterns)
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	for _, ev := range pub.events {
		if ev.UserID != learner.String() {
			t.Fatalf("event routed to wrong user: %+v", ev)
		}
	}
}

func TestDispatcher_PublishFailureIsCounted(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	broken := uuid.New()
	sk := skill.Skill{ID: uuid.New(), UserID: broken, Name: "SQL", Reminder: skill.Reminder{Needed: true, Frequency: skill.FrequencyMonthly}}

	skills := &fakeSkills{due: []skill.Skill{sk}}
	pub := &fakePublisher{failOn: broken.String()}
	d := NewDispatcher(skills, &fakeApps{}, pub, nil, config.ReminderConfig{}, clock, nil)

	sum, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.Failed != 1 || sum.SkillReminders != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if _, ok := skills.advanced[sk.ID]; ok {
		t.Fatalf("reminder must not advance when publish fails")
	}
}

func TestDispatcher_ListErrorAborts(t *testing.T) {
	d := NewDispatcher(&fakeSkills{}, &fakeApps{err: errors.New("db gone")}, &fakePublisher{}, nil, config.ReminderConfig{}, clockwork.NewFakeClock(), nil)
	if _, err := d.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNextReminderDate_SkipsMissedRuns(t *testing.T) {
	today := *day("2026-03-20")
	r := skill.Reminder{Frequency: skill.FrequencyWeekly, NextDate: day("2026-03-01")}
	if got := NextReminderDate(r, today, 3); !got.Equal(*day("2026-03-22")) {
		t.Fatalf("expected 2026-03-22, got %v", got)
	}

	custom := skill.Reminder{Frequency: skill.FrequencyCustom}
	if got := NextReminderDate(custom, today, 3); !got.Equal(*day("2026-03-23")) {
		t.Fatalf("expected 2026-03-23, got %v", got)
	}
}

func TestClosingWarning(t *testing.T) {
	today := *day("2026-03-10")
	cases := map[string]string{
		"2026-03-10": "Intern at Acme closes today.",
		"2026-03-11": "Intern at Acme closes tomorrow.",
		"2026-03-15": "Intern at Acme closes in 5 days.",
	}
	for last, want := range cases {
		n := ClosingWarning(application.Application{Name: "Intern", CompanyName: "Acme", LastDateToApply: day(last)}, today)
		if n.Message != want || n.Severity != notification.SeverityWarning {
			t.Fatalf("%s: unexpected %+v", last, n)
		}
	}
}
