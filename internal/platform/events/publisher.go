// Package events provides a fire-and-forget NATS publisher for domain events.
// Handlers that produce business events import this package; the notification
// worker consumes the same subjects.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subject constants for every domain event type.
const (
	SubjectCommentCreated = "events.comment.created"
	SubjectCommentReplied = "events.comment.replied"
	SubjectArtistFollowed = "events.artist.followed"
	SubjectItemLiked      = "events.item.liked"
)

// Event is the canonical envelope sent to all events.* subjects.
type Event struct {
	EventID     string         `json:"event_id"`
	Kind        string         `json:"kind"`
	ActorUserID string         `json:"actor_user_id,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Publisher publishes domain events to NATS JetStream.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// New creates a Publisher using an existing JetStream context.
// Pass js=nil to get a no-op stub (useful in tests and deployments without NATS).
func New(js nats.JetStreamContext, log *zap.Logger) *Publisher {
	return &Publisher{js: js, log: log}
}

// Publish sends a domain event asynchronously (fire-and-forget).
// Failures are logged as warnings and never surface to the caller.
// The publisher is safe to call with a nil receiver.
func (p *Publisher) Publish(subject, kind, actorUserID string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:     uuid.NewString(),
		Kind:        kind,
		ActorUserID: actorUserID,
		OccurredAt:  time.Now().UTC(),
		Properties:  props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
