package ws

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"career-dash/internal/domain/notification"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/logging"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ListBadges     = "badges"
	ListPriorities = "priorities"
)

// Inbound events a dashboard sends while the student drags list items.
const (
	EventLoad      = "load"
	EventDragStart = "dragstart"
	EventDragOver  = "dragover"
	EventDragEnd   = "dragend"
	EventDrop      = "drop"
)

type InboundMessage struct {
	Type string   `json:"type"`
	List string   `json:"list"`
	ID   string   `json:"id,omitempty"`
	Path []string `json:"path,omitempty"`
}

type StateMessage struct {
	Type  string `json:"type"`
	List  string `json:"list"`
	Items any    `json:"items"`
	Busy  bool   `json:"busy"`
}

type NotificationMessage struct {
	Type string `json:"type"`
	notification.Notification
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Board is the part of ordering.Board a session drives.
type Board interface {
	Load(ctx context.Context) error
	DragStart(id string) string
	DragOver() string
	DragEnd()
	BeginDrop(path []string) (ordering.PendingSync, error)
	Busy() bool
}

// BoardFactory builds the board of one list for one user. Notifications go to
// sink and every visible order change is passed to publish.
type BoardFactory func(userID uuid.UUID, sink notification.Sink, publish func(items any, busy bool)) Board

type BoardSettings struct {
	Timeout time.Duration
	Mode    ordering.CommitMode
}

// NewBoardFactory wires a list's data service capabilities into a board.
// encode turns the visible items into their wire payload.
func NewBoardFactory[T, R any](
	source func(uuid.UUID) ordering.Source[T],
	updater func(uuid.UUID) ordering.OrderUpdater,
	messages ordering.Messages,
	settings BoardSettings,
	encode func([]ordering.Item[T]) R,
) BoardFactory {
	return func(userID uuid.UUID, sink notification.Sink, publish func(items any, busy bool)) Board {
		var b *ordering.Board[T]
		b = ordering.NewBoard(ordering.BoardConfig[T]{
			Source: source(userID),
			Syncer: ordering.NewSyncer(updater(userID), sink, ordering.SyncConfig{Timeout: settings.Timeout, Messages: messages}),
			Sink:   sink,
			Mode:   settings.Mode,
			OnChange: func(items []ordering.Item[T]) {
				publish(encode(items), b.Busy())
			},
		})
		return b
	}
}

// Session holds the boards of one connection and applies inbound drag
// events to them.
type Session struct {
	ctx    context.Context
	userID uuid.UUID
	send   func(v any)
	boards map[string]Board
	logger logrus.FieldLogger
}

func NewSession(ctx context.Context, userID uuid.UUID, send func(v any), factories map[string]BoardFactory, logger logrus.FieldLogger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		ctx:    ctx,
		userID: userID,
		send:   send,
		boards: make(map[string]Board, len(factories)),
		logger: logger,
	}
	sink := notification.SinkFunc(func(n notification.Notification) {
		s.send(NotificationMessage{Type: "notification", Notification: n})
	})
	for name, factory := range factories {
		s.boards[name] = factory(userID, sink, func(items any, busy bool) {
			s.send(StateMessage{Type: "state", List: name, Items: items, Busy: busy})
		})
	}
	return s
}

// Handle applies one raw inbound frame. A drop reorders before Handle
// returns; only the save runs in its own goroutine so the connection keeps
// reading while the order is stored.
func (s *Session) Handle(raw []byte) {
	var in InboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		s.send(ErrorMessage{Type: "error", Message: "Malformed message"})
		return
	}

	board, ok := s.boards[strings.ToLower(strings.TrimSpace(in.List))]
	if !ok {
		s.send(ErrorMessage{Type: "error", Message: "Unknown list"})
		return
	}

	switch in.Type {
	case EventLoad:
		if err := board.Load(s.ctx); err != nil {
			s.logger.Warnf("[WS] load failed user_id=%s list=%s error=%v", s.userID, in.List, err)
		}
	case EventDragStart:
		board.DragStart(in.ID)
	case EventDragOver:
		board.DragOver()
	case EventDragEnd:
		board.DragEnd()
	case EventDrop:
		save, err := board.BeginDrop(in.Path)
		if err != nil || save == nil {
			return
		}
		go func() {
			if err := save(s.ctx); err != nil {
				s.logger.Warnf("[WS] order sync failed user_id=%s list=%s error=%v", s.userID, in.List, err)
			}
		}()
	default:
		s.send(ErrorMessage{Type: "error", Message: "Unknown event"})
	}
}
