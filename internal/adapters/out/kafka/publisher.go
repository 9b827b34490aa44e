// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/order"
	"yuandi/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "yuandi.orders"

// BatchTimeout bounds how long a synchronous publish waits for a batch to fill.
// kafka-go defaults to one second, which every request would otherwise pay.
const BatchTimeout = 10 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventMessage is the JSON value of every published message. The message key
// is the order number, so events of one order keep their order on a partition.
type EventMessage struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publisher implements ports.EventPublisher. Without brokers it only logs.
type Publisher struct {
	writer messageWriter
	logger zerolog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher builds a publisher for brokers. An empty broker list yields a
// disabled publisher.
func NewPublisher(brokers []string, topic string, logger zerolog.Logger) *Publisher {
	logger = logger.With().Str("component", "kafka_publisher").Logger()
	if len(brokers) == 0 {
		return &Publisher{logger: logger}
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: BatchTimeout,
		},
		logger: logger,
	}
}

func newPublisherWithWriter(writer messageWriter, logger zerolog.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

func (p *Publisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	if !p.Enabled() {
		for _, event := range events {
			p.logger.Debug().
				Str("type", string(event.Type)).
				Str("order_number", event.OrderNumber.String()).
				Msg("event not published, kafka disabled")
		}
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(toMessage(event))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", event.Type, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.OrderNumber.String()),
			Value: value,
			Time:  event.OccurredAt.UTC(),
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error().Err(err).Int("count", len(messages)).Msg("publish order events")
		return fmt.Errorf("write %d order events: %w", len(messages), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func toMessage(event order.Event) EventMessage {
	msg := EventMessage{
		Type:        string(event.Type),
		OrderNumber: event.OrderNumber.String(),
		Status:      event.Status.String(),
		OccurredAt:  event.OccurredAt.UTC(),
	}
	if !event.OrderID.IsZero() {
		msg.OrderID = event.OrderID.String()
	}
	return msg
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
