package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-dash/internal/domain/notification"
	"career-dash/internal/domain/ordering"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const orderLockTTL = 15 * time.Second

// orderedList is the persistence shared by the reorderable dashboard lists:
// a cached normalized read and lock-guarded full-order writes.
type orderedList[T any] struct {
	name    string
	cache   ListCache
	logger  logrus.FieldLogger
	fetch   func(ctx context.Context, userID uuid.UUID) ([]ordering.RawItem[T], error)
	persist func(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error
}

func (l *orderedList[T]) cacheKey(userID uuid.UUID) string {
	return userListCacheKey(userID, l.name)
}

func (l *orderedList[T]) load(ctx context.Context, userID uuid.UUID) ([]ordering.Item[T], error) {
	var cached []ordering.Item[T]
	if ok, err := l.cache.GetJSON(ctx, l.cacheKey(userID), &cached); err == nil && ok {
		return cached, nil
	}

	items, err := l.loadFresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := l.cache.SetJSON(ctx, l.cacheKey(userID), items, 0); err != nil {
		l.logger.Warnf("[Order] cache set failed list=%s user_id=%s err=%v", l.name, userID, err)
	}
	return items, nil
}

func (l *orderedList[T]) loadFresh(ctx context.Context, userID uuid.UUID) ([]ordering.Item[T], error) {
	raw, err := l.fetch(ctx, userID)
	if err != nil {
		l.logger.Errorf("[Order] fetch failed list=%s user_id=%s err=%v", l.name, userID, err)
		return nil, ErrInternal
	}
	return ordering.Load(raw), nil
}

// save persists a full order. updates must be a dense permutation of the
// current list.
func (l *orderedList[T]) save(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) ([]ordering.Item[T], error) {
	current, err := l.loadFresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ordering.ValidatePermutation(current, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := l.write(ctx, userID, updates); err != nil {
		return nil, err
	}
	return ordering.Apply(current, updates), nil
}

// move reorders draggedID before targetID and persists the result. Unknown
// ids or a self drop leave the list untouched.
func (l *orderedList[T]) move(ctx context.Context, userID uuid.UUID, draggedID, targetID string) ([]ordering.Item[T], bool, error) {
	current, err := l.loadFresh(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	next, moved := ordering.Reorder(current, draggedID, targetID)
	if !moved {
		return current, false, nil
	}
	if err := l.write(ctx, userID, ordering.Updates(next)); err != nil {
		return nil, false, err
	}
	return next, true, nil
}

func (l *orderedList[T]) write(ctx context.Context, userID uuid.UUID, updates []ordering.OrderUpdate) error {
	lockKey := OrderLockKey(userID, l.name)
	token := uuid.NewString()
	ok, err := l.cache.SetIfNotExists(ctx, lockKey, token, orderLockTTL)
	if err != nil {
		// Cache trouble must not block saving; fall through unlocked.
		l.logger.Warnf("[Order] lock unavailable list=%s user_id=%s err=%v", l.name, userID, err)
		ok = true
	}
	if !ok {
		return ErrOrderBusy
	}
	defer func() {
		if err := l.cache.Release(context.Background(), lockKey, token); err != nil {
			l.logger.Warnf("[Order] lock release failed list=%s user_id=%s err=%v", l.name, userID, err)
		}
	}()

	if err := l.persist(ctx, userID, updates); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		l.logger.Errorf("[Order] persist failed list=%s user_id=%s err=%v", l.name, userID, err)
		return ErrInternal
	}
	l.invalidate(ctx, userID)
	return nil
}

func (l *orderedList[T]) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := l.cache.Delete(ctx, l.cacheKey(userID)); err != nil {
		l.logger.Warnf("[Order] cache invalidate failed list=%s user_id=%s err=%v", l.name, userID, err)
	}
}

func (l *orderedList[T]) source(userID uuid.UUID) ordering.Source[T] {
	return ordering.SourceFunc[T](func(ctx context.Context) ([]ordering.RawItem[T], error) {
		raw, err := l.fetch(ctx, userID)
		if err != nil {
			return nil, remoteError(err)
		}
		return raw, nil
	})
}

func (l *orderedList[T]) updater(userID uuid.UUID) ordering.OrderUpdater {
	return ordering.OrderUpdaterFunc(func(ctx context.Context, updates []ordering.OrderUpdate) error {
		if _, err := l.save(ctx, userID, updates); err != nil {
			return remoteError(err)
		}
		return nil
	})
}

// remoteError attaches a student-facing message to the errors that have one.
// Anything else surfaces as the generic fallback.
func remoteError(err error) error {
	switch {
	case errors.Is(err, ErrOrderBusy):
		return &notification.RemoteError{Message: "Another save of this list is in progress.", Cause: err}
	case errors.Is(err, ErrInvalidInput):
		return &notification.RemoteError{Message: "The list changed elsewhere. Reload and try again.", Cause: err}
	case errors.Is(err, ErrNotFound):
		return &notification.RemoteError{Message: "An item in this list no longer exists.", Cause: err}
	}
	return err
}
