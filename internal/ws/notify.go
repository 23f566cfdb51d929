package ws

import (
	"context"
	"encoding/json"

	"career-dash/internal/domain/notification"
	"career-dash/internal/infrastructure/pubsub"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Deliver pushes n to every open dashboard of userID.
func (h *Hub) Deliver(userID string, n notification.Notification) {
	b, err := json.Marshal(NotificationMessage{Type: "notification", Notification: n})
	if err != nil {
		return
	}
	h.SendToUser(userID, b)
}

// UserSink returns a sink that delivers to one user's dashboards.
func (h *Hub) UserSink(userID string) notification.Sink {
	return notification.SinkFunc(func(n notification.Notification) {
		h.Deliver(userID, n)
	})
}

// Relay forwards notification events published by other processes, such as
// the reminder job, to the connected clients of this hub.
func Relay(ctx context.Context, logger logrus.FieldLogger, rc *redis.Client, channel string, hub *Hub) error {
	return pubsub.Subscribe(ctx, logger, rc, channel, func(ev pubsub.Event) {
		hub.Deliver(ev.UserID, ev.Notification)
	})
}
