package ordering

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"career-dash/internal/domain/notification"
)

// recorder keeps every notification it is sent.
type recorder struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (r *recorder) Notify(n notification.Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *recorder) All() []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Notification(nil), r.items...)
}

func (r *recorder) Last() (notification.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return notification.Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

type fakeRemote struct {
	mu       sync.Mutex
	raw      []RawItem[string]
	fetchErr error
	syncErr  error
	saved    [][]OrderUpdate
	block    chan struct{}
}

func (f *fakeRemote) Fetch(context.Context) ([]RawItem[string], error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.raw, nil
}

func (f *fakeRemote) UpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.saved = append(f.saved, updates)
	f.mu.Unlock()
	return f.syncErr
}

func newTestBoard(t *testing.T, remote *fakeRemote, mode CommitMode) (*Board[string], *recorder) {
	t.Helper()
	rec := &recorder{}
	b := NewBoard(BoardConfig[string]{
		Source: remote,
		Syncer: NewSyncer(remote, rec, SyncConfig{Timeout: time.Second}),
		Sink:   rec,
		Mode:   mode,
	})
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return b, rec
}

func abcdRaw() []RawItem[string] {
	return []RawItem[string]{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
}

func TestBoard_DropReordersAndSyncs(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw()}
	b, rec := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	b.DragOver()
	moved, err := b.Drop(context.Background(), []string{"", "C"})
	if err != nil || !moved {
		t.Fatalf("expected move, got moved=%v err=%v", moved, err)
	}
	if ids := IDs(b.Items()); !reflect.DeepEqual(ids, []string{"B", "A", "C", "D"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
	if _, ok := b.Dragged(); ok {
		t.Fatalf("expected drag state cleared after drop")
	}
	if len(remote.saved) != 1 {
		t.Fatalf("expected 1 sync, got %d", len(remote.saved))
	}
	want := []OrderUpdate{{"B", 1}, {"A", 2}, {"C", 3}, {"D", 4}}
	if !reflect.DeepEqual(remote.saved[0], want) {
		t.Fatalf("unexpected sync payload: %v", remote.saved[0])
	}
	last, _ := rec.Last()
	if last.Severity != notification.SeveritySuccess {
		t.Fatalf("expected success notification, got %+v", last)
	}
}

func TestBoard_FailedSyncKeepsOptimisticOrder(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw(), syncErr: &notification.RemoteError{Message: "Insufficient access"}}
	b, rec := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	moved, err := b.Drop(context.Background(), []string{"C"})
	if !moved || err == nil {
		t.Fatalf("expected moved with error, got moved=%v err=%v", moved, err)
	}
	if ids := IDs(b.Items()); !reflect.DeepEqual(ids, []string{"B", "A", "C", "D"}) {
		t.Fatalf("expected optimistic order kept, got %v", ids)
	}
	last, _ := rec.Last()
	if last.Severity != notification.SeverityError || last.Message != "Insufficient access" {
		t.Fatalf("unexpected notification: %+v", last)
	}
}

func TestBoard_FailedSyncRollsBackWhenPessimistic(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw(), syncErr: errors.New("boom")}
	b, _ := newTestBoard(t, remote, CommitPessimistic)

	b.DragStart("A")
	_, err := b.Drop(context.Background(), []string{"C"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if ids := IDs(b.Items()); !reflect.DeepEqual(ids, []string{"A", "B", "C", "D"}) {
		t.Fatalf("expected rollback, got %v", ids)
	}
}

func TestBoard_DropWithoutTargetIsNoop(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw()}
	b, rec := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	moved, err := b.Drop(context.Background(), []string{"", "grid"})
	if moved || err != nil {
		t.Fatalf("expected silent no-op, got moved=%v err=%v", moved, err)
	}
	if len(remote.saved) != 0 {
		t.Fatalf("expected no sync")
	}
	if len(rec.All()) != 0 {
		t.Fatalf("expected no notifications, got %v", rec.All())
	}
}

func TestBoard_DropWithoutDragIsNoop(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw()}
	b, _ := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	b.DragEnd()
	moved, err := b.Drop(context.Background(), []string{"C"})
	if moved || err != nil {
		t.Fatalf("expected no-op, got moved=%v err=%v", moved, err)
	}
}

func TestBoard_DropWhileSyncingIsRejected(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw(), block: make(chan struct{})}
	b, rec := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = b.Drop(context.Background(), []string{"C"})
	}()

	deadline := time.Now().Add(time.Second)
	for !b.Busy() {
		if time.Now().After(deadline) {
			t.Fatalf("board never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	b.DragStart("D")
	moved, err := b.Drop(context.Background(), []string{"B"})
	if moved || !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got moved=%v err=%v", moved, err)
	}
	last, _ := rec.Last()
	if last.Severity != notification.SeverityWarning {
		t.Fatalf("expected warning notification, got %+v", last)
	}

	close(remote.block)
	<-done
	if b.Busy() {
		t.Fatalf("expected board idle after sync")
	}
	if ids := IDs(b.Items()); !reflect.DeepEqual(ids, []string{"B", "A", "C", "D"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestBoard_LoadFailureNotifiesAndEmpties(t *testing.T) {
	remote := &fakeRemote{fetchErr: errors.New("timeout")}
	rec := &recorder{}
	var changes int
	b := NewBoard(BoardConfig[string]{
		Source:   remote,
		Syncer:   NewSyncer(remote, rec, SyncConfig{}),
		Sink:     rec,
		OnChange: func([]Item[string]) { changes++ },
	})

	if err := b.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(b.Items()) != 0 {
		t.Fatalf("expected empty list")
	}
	last, _ := rec.Last()
	if last.Severity != notification.SeverityError || last.Message != notification.FallbackMessage {
		t.Fatalf("unexpected notification: %+v", last)
	}
	if changes != 1 {
		t.Fatalf("expected 1 change callback, got %d", changes)
	}
}

func TestBoard_BeginDropReordersBeforeSave(t *testing.T) {
	remote := &fakeRemote{raw: abcdRaw()}
	b, _ := newTestBoard(t, remote, CommitOptimistic)

	b.DragStart("A")
	save, err := b.BeginDrop([]string{"C"})
	if err != nil || save == nil {
		t.Fatalf("expected pending save, got err=%v", err)
	}
	b.DragEnd()

	if ids := IDs(b.Items()); !reflect.DeepEqual(ids, []string{"B", "A", "C", "D"}) {
		t.Fatalf("expected local reorder before save, got %v", ids)
	}
	if !b.Busy() {
		t.Fatalf("expected board busy until saved")
	}
	if len(remote.saved) != 0 {
		t.Fatalf("expected no sync before save runs")
	}

	if err := save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(remote.saved) != 1 || b.Busy() {
		t.Fatalf("expected one sync and idle board, got %d busy=%v", len(remote.saved), b.Busy())
	}
}
