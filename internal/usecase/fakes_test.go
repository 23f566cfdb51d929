package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"sync"
	"time"

	"career-dash/internal/domain/application"
	"career-dash/internal/domain/badge"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/domain/skill"
	"career-dash/internal/domain/user"
	"career-dash/internal/logging"
	"career-dash/internal/repository"

	"github.com/google/uuid"
)

var testLogger = logging.Discard()

type fakeApplicationRepo struct {
	items     []application.Application
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastState application.Status
}

func (f *fakeApplicationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []application.Application{}
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	if f.err != nil {
		return application.Application{}, f.err
	}
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeApplicationRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	for i, a := range f.items {
		if a.ID == id && a.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) ListClosing(_ context.Context, userID uuid.UUID, from, to time.Time) ([]application.Application, error) {
	f.lastFrom, f.lastTo = from, to
	out := []application.Application{}
	for _, a := range f.items {
		if a.UserID != userID || a.LastDateToApply == nil {
			continue
		}
		if !a.LastDateToApply.Before(from) && !a.LastDateToApply.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListClosingAll(_ context.Context, from, to time.Time) ([]application.Application, error) {
	out := []application.Application{}
	for _, a := range f.items {
		if a.LastDateToApply != nil && !a.LastDateToApply.Before(from) && !a.LastDateToApply.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, userID uuid.UUID, status application.Status) (application.Application, error) {
	for i, a := range f.items {
		if a.ID == id && a.UserID == userID {
			f.items[i].Status = status
			f.lastState = status
			return f.items[i], nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

type fakeSkillRepo struct {
	mu        sync.Mutex
	items     []skill.Skill
	err       error
	updateErr error
	advanced  map[uuid.UUID]time.Time
}

func (f *fakeSkillRepo) find(id, userID uuid.UUID) int {
	for i, s := range f.items {
		if s.ID == id && s.UserID == userID {
			return i
		}
	}
	return -1
}

func (f *fakeSkillRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []skill.Skill{}
	for _, s := range f.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) GetByID(_ context.Context, id uuid.UUID, userID uuid.UUID) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id, userID); i >= 0 {
		return f.items[i], nil
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) Create(_ context.Context, s skill.Skill) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return skill.Skill{}, f.err
	}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeSkillRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id, userID); i >= 0 {
		f.items = append(f.items[:i], f.items[i+1:]...)
		return nil
	}
	return repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) Update(_ context.Context, s skill.Skill) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(s.ID, s.UserID); i >= 0 {
		f.items[i] = s
		return s, nil
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) UpdateMany(_ context.Context, userID uuid.UUID, skills []skill.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range skills {
		if f.find(s.ID, userID) < 0 {
			return repository.ErrSkillNotFound
		}
	}
	for _, s := range skills {
		f.items[f.find(s.ID, userID)] = s
	}
	return nil
}

func (f *fakeSkillRepo) ListToLearn(_ context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []skill.Skill{}
	for _, s := range f.items {
		if s.UserID == userID && s.Type == skill.TypeToLearn {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Priority, out[j].Priority
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})
	return out, nil
}

func (f *fakeSkillRepo) UpdatePriorities(_ context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, up := range updates {
		id, err := uuid.Parse(up.ID)
		if err != nil {
			return repository.ErrSkillNotFound
		}
		i := f.find(id, userID)
		if i < 0 {
			return repository.ErrSkillNotFound
		}
		key := up.OrderKey
		f.items[i].Priority = &key
	}
	return nil
}

func (f *fakeSkillRepo) ListDueReminders(_ context.Context, day time.Time) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []skill.Skill{}
	for _, s := range f.items {
		if s.Reminder.Needed && s.Reminder.NextDate != nil && !s.Reminder.NextDate.After(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) AdvanceReminder(_ context.Context, id uuid.UUID, next time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.advanced == nil {
		f.advanced = map[uuid.UUID]time.Time{}
	}
	f.advanced[id] = next
	return nil
}

type fakeBadgeRepo struct {
	catalog []badge.Badge
	owned   []badge.UserBadge
	saved   [][]ordering.OrderUpdate
}

func (f *fakeBadgeRepo) ListCatalog(context.Context) ([]badge.Badge, error) {
	return f.catalog, nil
}

func (f *fakeBadgeRepo) ListUserBadges(_ context.Context, userID uuid.UUID) ([]badge.UserBadge, error) {
	out := []badge.UserBadge{}
	for _, ub := range f.owned {
		if ub.UserID == userID {
			out = append(out, ub)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) Award(_ context.Context, userID uuid.UUID, badgeID uuid.UUID, earned time.Time) (badge.UserBadge, error) {
	var found *badge.Badge
	for i := range f.catalog {
		if f.catalog[i].ID == badgeID {
			found = &f.catalog[i]
		}
	}
	if found == nil {
		return badge.UserBadge{}, repository.ErrBadgeNotFound
	}
	for _, ub := range f.owned {
		if ub.UserID == userID && ub.BadgeID == badgeID {
			return badge.UserBadge{}, repository.ErrBadgeAlreadyOwned
		}
	}
	ub := badge.UserBadge{ID: uuid.New(), UserID: userID, BadgeID: badgeID, Name: found.Name, EarnedDate: &earned}
	f.owned = append(f.owned, ub)
	return ub, nil
}

func (f *fakeBadgeRepo) DeleteUserBadge(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	for i, ub := range f.owned {
		if ub.ID == id && ub.UserID == userID {
			f.owned = append(f.owned[:i], f.owned[i+1:]...)
			return nil
		}
	}
	return repository.ErrBadgeNotFound
}

func (f *fakeBadgeRepo) UpdateDisplayOrder(_ context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
	f.saved = append(f.saved, updates)
	for _, up := range updates {
		matched := false
		for i := range f.owned {
			if f.owned[i].ID.String() == up.ID && f.owned[i].UserID == userID {
				key := up.OrderKey
				f.owned[i].DisplayOrder = &key
				matched = true
			}
		}
		if !matched {
			return repository.ErrBadgeNotFound
		}
	}
	return nil
}

type fakeUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// memCache is an in-process ListCache.
type memCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	locks   map[string]string
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}, locks: map[string]string{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.deletes = append(m.deletes, key)
	m.mu.Unlock()
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.values {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.values, key)
			m.deletes = append(m.deletes, key)
		}
	}
	return nil
}

func (m *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[key]; held {
		return false, nil
	}
	m.locks[key] = value
	return true, nil
}

func (m *memCache) Release(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] == value {
		delete(m.locks, key)
	}
	return nil
}

func (m *memCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func datePtr(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}
