package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"career-dash/internal/domain/badge"
	"career-dash/internal/domain/notification"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

func intPtr(v int) *int { return &v }

func priorityFixture(userID uuid.UUID) (*fakeSkillRepo, []uuid.UUID) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	repo := &fakeSkillRepo{items: []skill.Skill{
		{ID: ids[0], UserID: userID, Name: "A", Type: skill.TypeToLearn, Priority: intPtr(1)},
		{ID: ids[1], UserID: userID, Name: "B", Type: skill.TypeToLearn, Priority: intPtr(5)},
		{ID: ids[2], UserID: userID, Name: "C", Type: skill.TypeToLearn},
		{ID: ids[3], UserID: userID, Name: "D", Type: skill.TypeToLearn},
		{ID: uuid.New(), UserID: userID, Name: "Learned", Type: skill.TypeLearned},
	}}
	return repo, ids
}

func names(items []ordering.Item[skill.Skill]) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Payload.Name)
	}
	return out
}

func TestSkillPriorities_ListNormalizesAndCaches(t *testing.T) {
	userID := uuid.New()
	repo, _ := priorityFixture(userID)
	cache := newMemCache()
	uc := NewSkillPriorityUsecase(repo, cache, testLogger)

	items, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := names(items); !reflect.DeepEqual(got, []string{"A", "C", "D", "B"}) {
		t.Fatalf("unexpected order %v", got)
	}
	for i, it := range items {
		if it.OrderKey != i+1 {
			t.Fatalf("expected dense keys, got %d at %d", it.OrderKey, i)
		}
	}
	if !cache.has(PrioritiesCacheKey(userID)) {
		t.Fatalf("expected list cached")
	}
}

func TestSkillPriorities_SaveRequiresPermutation(t *testing.T) {
	userID := uuid.New()
	repo, ids := priorityFixture(userID)
	uc := NewSkillPriorityUsecase(repo, newMemCache(), testLogger)

	_, err := uc.Save(context.Background(), userID, []ordering.OrderUpdate{{ID: ids[0].String(), OrderKey: 1}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	items, err := uc.Save(context.Background(), userID, []ordering.OrderUpdate{
		{ID: ids[3].String(), OrderKey: 1},
		{ID: ids[2].String(), OrderKey: 2},
		{ID: ids[1].String(), OrderKey: 3},
		{ID: ids[0].String(), OrderKey: 4},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := names(items); !reflect.DeepEqual(got, []string{"D", "C", "B", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if *repo.items[3].Priority != 1 || *repo.items[0].Priority != 4 {
		t.Fatalf("priorities not persisted")
	}
}

func TestSkillPriorities_MovePersistsAndInvalidates(t *testing.T) {
	userID := uuid.New()
	repo, ids := priorityFixture(userID)
	cache := newMemCache()
	uc := NewSkillPriorityUsecase(repo, cache, testLogger)

	if _, err := uc.List(context.Background(), userID); err != nil {
		t.Fatalf("list: %v", err)
	}

	// current order is A C D B; drag A onto D
	items, moved, err := uc.Move(context.Background(), userID, ids[0].String(), ids[3].String())
	if err != nil || !moved {
		t.Fatalf("expected move, moved=%v err=%v", moved, err)
	}
	if got := names(items); !reflect.DeepEqual(got, []string{"C", "A", "D", "B"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if cache.has(PrioritiesCacheKey(userID)) {
		t.Fatalf("expected cache invalidated after move")
	}

	_, moved, err = uc.Move(context.Background(), userID, ids[0].String(), "missing")
	if err != nil || moved {
		t.Fatalf("expected no-op for unknown target, moved=%v err=%v", moved, err)
	}
}

func TestSkillPriorities_BusyLock(t *testing.T) {
	userID := uuid.New()
	repo, ids := priorityFixture(userID)
	cache := newMemCache()
	uc := NewSkillPriorityUsecase(repo, cache, testLogger)

	cache.locks[OrderLockKey(userID, listPriorities)] = "someone-else"
	_, _, err := uc.Move(context.Background(), userID, ids[0].String(), ids[2].String())
	if !errors.Is(err, ErrOrderBusy) {
		t.Fatalf("expected ErrOrderBusy, got %v", err)
	}
}

func TestSkillPriorities_BoardUpdaterCarriesRemoteMessage(t *testing.T) {
	userID := uuid.New()
	repo, _ := priorityFixture(userID)
	uc := NewSkillPriorityUsecase(repo, newMemCache(), testLogger)

	err := uc.BoardUpdater(userID).UpdateOrder(context.Background(), []ordering.OrderUpdate{{ID: "x", OrderKey: 1}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if msg := notification.MessageOf(err, ""); msg != "The list changed elsewhere. Reload and try again." {
		t.Fatalf("unexpected message %q", msg)
	}

	repo.updateErr = errors.New("deadlock detected")
	board := ordering.NewBoard(ordering.BoardConfig[skill.Skill]{
		Source: uc.BoardSource(userID),
		Syncer: ordering.NewSyncer(uc.BoardUpdater(userID), nil, ordering.SyncConfig{}),
	})
	if err := board.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	items := board.Items()
	board.DragStart(items[0].ID)
	_, err = board.Drop(context.Background(), []string{items[2].ID})
	if notification.MessageOf(err, "") != notification.FallbackMessage {
		t.Fatalf("internal errors must surface as the fallback message, got %v", err)
	}
}

func TestBadges_SaveOrderAndRemove(t *testing.T) {
	userID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	repo := &fakeBadgeRepo{owned: []badge.UserBadge{
		{ID: a, UserID: userID, Name: "Go Beginner"},
		{ID: b, UserID: userID, Name: "SQL Beginner"},
		{ID: c, UserID: userID, Name: "Interview Ready"},
	}}
	cache := newMemCache()
	uc := NewBadgeUsecase(repo, cache, clockwork.NewFakeClock(), testLogger)

	items, err := uc.SaveOrder(context.Background(), userID, []string{c.String(), a.String(), b.String()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := ordering.IDs(items); !reflect.DeepEqual(got, []string{c.String(), a.String(), b.String()}) {
		t.Fatalf("unexpected order %v", got)
	}
	if want := []ordering.OrderUpdate{{ID: c.String(), OrderKey: 1}, {ID: a.String(), OrderKey: 2}, {ID: b.String(), OrderKey: 3}}; !reflect.DeepEqual(repo.saved[0], want) {
		t.Fatalf("unexpected persisted order %v", repo.saved[0])
	}

	if _, err := uc.SaveOrder(context.Background(), userID, []string{a.String(), a.String(), b.String()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}

	if _, err := uc.List(context.Background(), userID); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := uc.Remove(context.Background(), userID, a); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cache.has(userListCacheKey(userID, listBadges)) {
		t.Fatalf("expected badge cache invalidated on remove")
	}
	if err := uc.Remove(context.Background(), userID, a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBadges_Award(t *testing.T) {
	userID := uuid.New()
	catalogID := uuid.New()
	repo := &fakeBadgeRepo{catalog: []badge.Badge{{ID: catalogID, Name: "Go Advanced"}}}
	clock := clockwork.NewFakeClock()
	uc := NewBadgeUsecase(repo, nil, clock, testLogger)

	ub, err := uc.Award(context.Background(), userID, catalogID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ub.EarnedDate == nil || ub.EarnedDate.Hour() != 0 {
		t.Fatalf("expected earned date truncated to the day, got %v", ub.EarnedDate)
	}
	if _, err := uc.Award(context.Background(), userID, catalogID); !errors.Is(err, ErrBadgeAlreadyEarned) {
		t.Fatalf("expected ErrBadgeAlreadyEarned, got %v", err)
	}
	if _, err := uc.Award(context.Background(), userID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
