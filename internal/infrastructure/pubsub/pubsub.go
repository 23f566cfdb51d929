// Package pubsub carries per-user dashboard notifications over a Redis
// channel so that processes without websocket clients can reach them.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"career-dash/internal/domain/notification"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultChannel = "dashboard:notifications"

var ErrNoClient = errors.New("pubsub: redis client unavailable")

type Event struct {
	UserID       string                    `json:"user_id"`
	Notification notification.Notification `json:"notification"`
}

type Publisher struct {
	rc      *redis.Client
	channel string
}

func NewPublisher(rc *redis.Client, channel string) *Publisher {
	if strings.TrimSpace(channel) == "" {
		channel = DefaultChannel
	}
	return &Publisher{rc: rc, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if p == nil || p.rc == nil {
		return ErrNoClient
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rc.Publish(ctx, p.channel, b).Err()
}

// Subscribe delivers events from channel to handle until ctx is done,
// resubscribing after a dropped connection.
func Subscribe(ctx context.Context, logger logrus.FieldLogger, rc *redis.Client, channel string, handle func(Event)) error {
	if rc == nil {
		return ErrNoClient
	}
	if strings.TrimSpace(channel) == "" {
		channel = DefaultChannel
	}

	for {
		sub := rc.Subscribe(ctx, channel)
		consume(ctx, logger, sub.Channel(), handle)
		_ = sub.Close()

		if ctx.Err() != nil {
			return nil
		}
		logger.Warnf("[PubSub] channel closed, reconnecting channel=%s", channel)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
}

func consume(ctx context.Context, logger logrus.FieldLogger, ch <-chan *redis.Message, handle func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Errorf("[PubSub] unable to parse event: %v", err)
				continue
			}
			if ev.UserID == "" {
				continue
			}
			handle(ev)
		}
	}
}
