package kafka

import (
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// NewPublisherWithWriter exposes the writer seam to the external test package.
func NewPublisherWithWriter(writer messageWriter, logger zerolog.Logger) *Publisher {
	return newPublisherWithWriter(writer, logger)
}

// WriterOf returns the kafka-go writer behind an enabled publisher.
func WriterOf(p *Publisher) *kafka.Writer {
	w, _ := p.writer.(*kafka.Writer)
	return w
}
