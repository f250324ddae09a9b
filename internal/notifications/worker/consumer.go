package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/artist-platform/internal/notifications/store"
	"github.com/example/artist-platform/internal/platform/events"
)

const (
	durableName   = "notifications"
	batchSize     = 50
	fetchInterval = 2 * time.Second
)

// StartConsumer pull-subscribes to all events.* subjects and turns each
// domain event into a notification row. It runs until ctx is canceled and is
// a no-op when nc is nil, so the server works without NATS.
func StartConsumer(ctx context.Context, nc *nats.Conn, ns store.NotificationStore, log *zap.Logger) {
	if nc == nil {
		log.Info("notifications: NATS not configured, consumer disabled")
		return
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("notifications: jetstream unavailable", zap.Error(err))
		return
	}
	sub, err := js.PullSubscribe("events.>", durableName)
	if err != nil {
		log.Warn("notifications: subscribe failed", zap.Error(err))
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			msgs, err := sub.Fetch(batchSize, nats.MaxWait(fetchInterval))
			if err != nil {
				if err == nats.ErrTimeout {
					continue
				}
				log.Warn("notifications: fetch failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			for _, m := range msgs {
				if err := handle(ctx, ns, m.Data); err != nil {
					log.Warn("notifications: handle failed", zap.Error(err))
					if err := m.Nak(); err != nil {
						log.Warn("notifications: nak failed", zap.Error(err))
					}
					continue
				}
				if err := m.Ack(); err != nil {
					log.Warn("notifications: ack failed", zap.Error(err))
				}
			}
		}
	}()
}

func handle(ctx context.Context, ns store.NotificationStore, data []byte) error {
	var ev events.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		// malformed payloads are dropped, redelivery cannot fix them
		return nil
	}
	n, ok := ToNotification(ev)
	if !ok {
		return nil
	}
	_, err := ns.Create(ctx, n)
	return err
}

// ToNotification maps a domain event to the notification it should produce.
// Events without a recipient, self-notifications, and unknown kinds produce
// nothing.
func ToNotification(ev events.Event) (store.Notification, bool) {
	recipient, _ := ev.Properties["recipient_user_id"].(string)
	if recipient == "" || recipient == ev.ActorUserID {
		return store.Notification{}, false
	}

	var kind store.Kind
	var body string
	var subjectID string
	switch ev.Kind {
	case "comment.created":
		kind = store.KindComment
		body = "New comment on your portfolio item"
		subjectID, _ = ev.Properties["comment_id"].(string)
	case "comment.replied":
		kind = store.KindReply
		body = "New reply to your comment"
		subjectID, _ = ev.Properties["comment_id"].(string)
	case "artist.followed":
		kind = store.KindFollow
		body = "You have a new follower"
		subjectID, _ = ev.Properties["artist_id"].(string)
	case "item.liked":
		kind = store.KindLike
		body = "Someone liked your portfolio item"
		subjectID, _ = ev.Properties["item_id"].(string)
	default:
		return store.Notification{}, false
	}

	return store.Notification{
		UserID:      recipient,
		ActorUserID: ev.ActorUserID,
		Kind:        kind,
		SubjectID:   subjectID,
		Body:        body,
	}, true
}
