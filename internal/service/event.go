package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	log.Ctx(ctx).Debug().Str("component", "NoopPublisher").Str("event_type", eventType).Str("key", key).Msg("")
	return nil
}
