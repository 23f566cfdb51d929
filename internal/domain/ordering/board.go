package ordering

import (
	"context"
	"errors"
	"sync"

	"career-dash/internal/domain/notification"
)

// Source fetches the raw list from the data service.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]RawItem[T], error)
}

type SourceFunc[T any] func(ctx context.Context) ([]RawItem[T], error)

func (f SourceFunc[T]) Fetch(ctx context.Context) ([]RawItem[T], error) {
	return f(ctx)
}

type BoardConfig[T any] struct {
	Source Source[T]
	Syncer *Syncer
	Sink   notification.Sink
	Mode   CommitMode

	// LoadErrorTitle titles the toast shown when the fetch fails.
	LoadErrorTitle string

	// OnChange is called, without internal locks held, whenever the visible
	// order changes: after a load, after a local reorder and after a rollback.
	OnChange func(items []Item[T])
}

// Board is one reorderable list: its state, drag controller and sync.
type Board[T any] struct {
	mu      sync.Mutex
	items   []Item[T]
	drag    DragController
	pending bool

	source         Source[T]
	syncer         *Syncer
	sink           notification.Sink
	mode           CommitMode
	loadErrorTitle string
	onChange       func(items []Item[T])
}

func NewBoard[T any](cfg BoardConfig[T]) *Board[T] {
	sink := cfg.Sink
	if sink == nil {
		sink = notification.Discard
	}
	mode := cfg.Mode
	if mode == "" {
		mode = CommitOptimistic
	}
	title := cfg.LoadErrorTitle
	if title == "" {
		title = "Error"
	}
	return &Board[T]{
		items:          []Item[T]{},
		source:         cfg.Source,
		syncer:         cfg.Syncer,
		sink:           sink,
		mode:           mode,
		loadErrorTitle: title,
		onChange:       cfg.OnChange,
	}
}

// Load fetches and normalizes the list, replacing the current state. A failed
// fetch empties the list and notifies the sink.
func (b *Board[T]) Load(ctx context.Context) error {
	if b.source == nil {
		return errors.New("ordering: board has no source")
	}

	raw, err := b.source.Fetch(ctx)
	if err != nil {
		b.mu.Lock()
		b.items = []Item[T]{}
		b.mu.Unlock()
		b.sink.Notify(notification.Error(b.loadErrorTitle, notification.MessageOf(err, notification.FallbackMessage)))
		b.changed()
		return err
	}

	items := Load(raw)
	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	b.changed()
	return nil
}

func (b *Board[T]) DragStart(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drag.DragStart(id)
}

func (b *Board[T]) DragEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag.DragEnd()
}

func (b *Board[T]) DragOver() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drag.DragOver()
}

func (b *Board[T]) Dragged() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drag.Dragged()
}

// PendingSync saves an order that BeginDrop already applied locally.
type PendingSync func(ctx context.Context) error

// BeginDrop resolves the drop target from path and reorders locally. It
// returns nil when nothing moved: drops without a dragged item or without a
// resolvable target are silent no-ops. A drop while a previous sync is
// outstanding is rejected with ErrSyncInProgress. Drag state is cleared
// before BeginDrop returns, so a dragend arriving afterwards is harmless.
func (b *Board[T]) BeginDrop(path []string) (PendingSync, error) {
	b.mu.Lock()
	dragged, ok := b.drag.Dragged()
	b.drag.DragEnd()
	if !ok {
		b.mu.Unlock()
		return nil, nil
	}
	if b.pending || b.syncer.InProgress() {
		b.mu.Unlock()
		msgs := b.syncer.Messages()
		b.sink.Notify(notification.Warning(msgs.BusyTitle, msgs.BusyMessage))
		return nil, ErrSyncInProgress
	}

	target, found := ResolveTarget(b.items, path)
	if !found {
		b.mu.Unlock()
		return nil, nil
	}
	next, moved := Reorder(b.items, dragged, target)
	if !moved {
		b.mu.Unlock()
		return nil, nil
	}

	prev := b.items
	b.items = next
	b.pending = true
	b.mu.Unlock()
	b.changed()

	return func(ctx context.Context) error {
		return b.finishDrop(ctx, prev, next)
	}, nil
}

func (b *Board[T]) finishDrop(ctx context.Context, prev, next []Item[T]) error {
	err := b.syncer.Sync(ctx, Updates(next))

	rolledBack := false
	b.mu.Lock()
	b.pending = false
	if err != nil && b.mode == CommitPessimistic && sameOrder(b.items, next) {
		b.items = prev
		rolledBack = true
	}
	b.mu.Unlock()
	if rolledBack {
		b.changed()
	}
	return err
}

// Drop is BeginDrop followed by the sync. It reports whether the local
// order changed.
func (b *Board[T]) Drop(ctx context.Context, path []string) (bool, error) {
	save, err := b.BeginDrop(path)
	if save == nil {
		return false, err
	}
	return true, save(ctx)
}

// Items returns a copy of the current list.
func (b *Board[T]) Items() []Item[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Item[T], len(b.items))
	copy(out, b.items)
	return out
}

// Busy reports whether a sync is outstanding; clients should disable
// dragging while it is true.
func (b *Board[T]) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending || b.syncer.InProgress()
}

func (b *Board[T]) changed() {
	if b.onChange == nil {
		return
	}
	b.onChange(b.Items())
}

func sameOrder[T any](a, b []Item[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].OrderKey != b[i].OrderKey {
			return false
		}
	}
	return true
}
