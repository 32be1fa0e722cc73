// Package events publishes booking lifecycle events to Kafka. Publishing is
// fire-and-forget telemetry: a confirmed booking stands whether or not its
// event reaches the broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"busbook/pkg/logger"
	"busbook/pkg/model"

	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	BookingConfirmed(ctx context.Context, confirmation *model.BookingConfirmation) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by booking id for per-booking ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 100 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("Kafka writer error", "detail", msg)
		}),
	}

	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) BookingConfirmed(ctx context.Context, confirmation *model.BookingConfirmation) error {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(confirmation.BookingID),
		Value: payload,
		Time:  confirmation.BookedAt,
	})
	if err != nil {
		p.log.Error("Failed to publish booking confirmation",
			"booking_id", confirmation.BookingID,
			"error", err,
		)
		return err
	}

	p.log.Debug("Booking confirmation published", "booking_id", confirmation.BookingID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) BookingConfirmed(context.Context, *model.BookingConfirmation) error { return nil }

func (NoopPublisher) Close() error { return nil }
