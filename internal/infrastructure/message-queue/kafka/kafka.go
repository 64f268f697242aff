package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	publishAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CreateKafkaWriter connects lazily on the first write, so a broker that is down at
// startup does not keep the API from serving.
func CreateKafkaWriter(conf *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(conf.KafkaConfig.BrokerAddress),
		Topic:                  conf.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

type Publisher struct {
	writer  messageWriter
	backoff time.Duration
}

func CreatePublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer, backoff: defaultBackoff}
}

// Publish sends {event_type, data} keyed by key, retrying a few times with a linear
// backoff.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	payload, err := json.Marshal(dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Msg("")
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}

	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "Publish").Str("event_type", eventType).Int("attempt", attempt).Msg("")

		if attempt < publishAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * p.backoff):
			}
		}
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", eventType).Msg("Giving up on event")
	return err
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
