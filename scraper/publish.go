package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/segmentio/kafka-go"
)

// Publisher mirrors scraped records onto a Kafka topic so downstream
// consumers see enrichment results as they land.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisherFromEnv builds a publisher from WELLS_KAFKA_BROKER and
// WELLS_KAFKA_TOPIC. Returns nil when the broker is not configured; the
// scraper then simply skips publishing.
func NewPublisherFromEnv() *Publisher {
	broker := os.Getenv("WELLS_KAFKA_BROKER")
	if broker == "" {
		return nil
	}
	topic := os.Getenv("WELLS_KAFKA_TOPIC")
	if topic == "" {
		topic = "wells.scraped"
	}

	log.Printf("publishing scraped records to %s on %s", topic, broker)
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes one scraped record, keyed by API number.
func (p *Publisher) Publish(ctx context.Context, rec Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.APINumber),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
