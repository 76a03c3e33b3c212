package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Channel and event names match what the frontend subscribes to.
	Channel   = "send_notify_skincare"
	EventName = "my-notify"
)

// Event is the broadcast payload.
type Event struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// Publisher pushes notification events onto a Redis pub/sub channel.
// Subscribers (websocket fan-out, other services) are out of scope
// here; this is just the publish side.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, message string) error {
	payload, err := json.Marshal(Event{
		Event:   EventName,
		Message: message,
	})
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Error().Err(err).Str("channel", Channel).Msg("Failed to publish notification")
		return err
	}

	log.Info().Str("channel", Channel).Str("event", EventName).Msg("Notification published")
	return nil
}
