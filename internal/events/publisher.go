// Package events publishes score lifecycle events to Kafka so downstream
// consumers (dashboards, alerting) can react to fresh compliance scores.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/aquascore/aquascore/pkg/scoring"
)

// ScoreComputed is the event body emitted after every successful scoring run.
type ScoreComputed struct {
	ScoreID    string         `json:"score_id"`
	OrgID      string         `json:"org_id"`
	Overall    int            `json:"overall"`
	Status     scoring.Status `json:"status"`
	Trend      scoring.Trend  `json:"trend"`
	ComputedAt time.Time      `json:"computed_at"`
}

// Publisher emits events to a single Kafka topic. A nil Publisher is valid
// and drops every event, so wiring stays unconditional in the daemon.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// PublishScore emits a ScoreComputed event keyed by organization so
// per-organization ordering holds across partitions.
func (p *Publisher) PublishScore(ctx context.Context, ev ScoreComputed) error {
	if p == nil || p.writer == nil {
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal score event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrgID),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("publish score event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
