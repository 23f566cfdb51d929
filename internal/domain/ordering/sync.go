package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"career-dash/internal/domain/notification"
)

type CommitMode string

const (
	// CommitOptimistic keeps the local order when the remote update fails.
	CommitOptimistic CommitMode = "optimistic"
	// CommitPessimistic restores the pre-drop order when the remote update fails.
	CommitPessimistic CommitMode = "pessimistic"
)

const DefaultSyncTimeout = 10 * time.Second

var (
	ErrSyncInProgress = errors.New("ordering: sync already in progress")
	ErrSyncTimeout    = errors.New("ordering: sync timed out")
	ErrInvalidMode    = errors.New("ordering: invalid commit mode")
)

func ParseCommitMode(s string) (CommitMode, error) {
	switch CommitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CommitOptimistic:
		return CommitOptimistic, nil
	case CommitPessimistic:
		return CommitPessimistic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// OrderUpdater persists a full list order.
type OrderUpdater interface {
	UpdateOrder(ctx context.Context, updates []OrderUpdate) error
}

type OrderUpdaterFunc func(ctx context.Context, updates []OrderUpdate) error

func (f OrderUpdaterFunc) UpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	return f(ctx, updates)
}

// Messages are the toast texts emitted by a Syncer.
type Messages struct {
	SuccessTitle   string
	SuccessMessage string
	ErrorTitle     string
	// ErrorPrefix is prepended to the remote error message.
	ErrorPrefix     string
	FallbackMessage string
	BusyTitle       string
	BusyMessage     string
}

func (m Messages) withDefaults() Messages {
	if m.SuccessTitle == "" {
		m.SuccessTitle = "Success"
	}
	if m.SuccessMessage == "" {
		m.SuccessMessage = "Order saved."
	}
	if m.ErrorTitle == "" {
		m.ErrorTitle = "Error"
	}
	if m.FallbackMessage == "" {
		m.FallbackMessage = notification.FallbackMessage
	}
	if m.BusyTitle == "" {
		m.BusyTitle = "Please wait"
	}
	if m.BusyMessage == "" {
		m.BusyMessage = "The previous order is still being saved."
	}
	return m
}

type SyncConfig struct {
	Timeout  time.Duration
	Messages Messages
}

// Syncer sends reordered lists to the data service. At most one call is
// outstanding at a time; the in-progress flag is always cleared when the call
// returns or the timeout elapses, even if the updater never returns.
type Syncer struct {
	updater  OrderUpdater
	sink     notification.Sink
	timeout  time.Duration
	messages Messages

	inProgress atomic.Bool
}

func NewSyncer(updater OrderUpdater, sink notification.Sink, cfg SyncConfig) *Syncer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	if sink == nil {
		sink = notification.Discard
	}
	return &Syncer{
		updater:  updater,
		sink:     sink,
		timeout:  timeout,
		messages: cfg.Messages.withDefaults(),
	}
}

func (s *Syncer) InProgress() bool {
	if s == nil {
		return false
	}
	return s.inProgress.Load()
}

func (s *Syncer) Messages() Messages {
	if s == nil {
		return Messages{}.withDefaults()
	}
	return s.messages
}

// Sync sends updates and reports the outcome to the sink. It returns
// ErrSyncInProgress without contacting the data service when another call is
// outstanding.
func (s *Syncer) Sync(ctx context.Context, updates []OrderUpdate) error {
	if s == nil || s.updater == nil {
		return errors.New("ordering: nil syncer")
	}
	if !s.inProgress.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.inProgress.Store(false)

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.updater.UpdateOrder(cctx, updates)
	}()

	var err error
	select {
	case err = <-done:
	case <-cctx.Done():
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			err = ErrSyncTimeout
		} else {
			err = cctx.Err()
		}
	}

	if err != nil {
		msg := notification.MessageOf(err, s.messages.FallbackMessage)
		s.sink.Notify(notification.Error(s.messages.ErrorTitle, s.messages.ErrorPrefix+msg))
		return err
	}

	s.sink.Notify(notification.Success(s.messages.SuccessTitle, s.messages.SuccessMessage))
	return nil
}
