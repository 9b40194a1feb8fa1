package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
)

// Default publisher configuration constants.
const (
	defaultDealTopic    = "chatnil.deal.scored"
	defaultMatchTopic   = "chatnil.match.generated"
	defaultWriteTimeout = 10 * time.Second
)

// KafkaPublisher writes engine events to Kafka topics.
type KafkaPublisher struct {
	writer       *kafka.Writer
	dealTopic    string
	matchTopic   string
	writeTimeout time.Duration
	clock        func() time.Time
	logger       logger.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		dealTopic:    defaultDealTopic,
		matchTopic:   defaultMatchTopic,
		writeTimeout: defaultWriteTimeout,
		clock:        time.Now,
		logger:       logger.Get().Named("events"),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           p.writeTimeout,
	}
	return p
}

func (p *KafkaPublisher) PublishDealScored(ctx context.Context, result model.ComplianceScoreResult) error {
	event := newDealScoredEvent(result, p.clock().UTC())
	return p.publish(ctx, p.dealTopic, result.AthleteID, event)
}

func (p *KafkaPublisher) PublishMatchGenerated(ctx context.Context, match model.MatchResult) error {
	event := newMatchGeneratedEvent(match, p.clock().UTC())
	return p.publish(ctx, p.matchTopic, match.AgencyID, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  p.clock(),
	})
	if err != nil {
		metrics.RecordError("events", "publish_failed")
		p.logger.Error(ctx, "event publish failed",
			logger.String("topic", topic),
			logger.Error(err),
		)
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
