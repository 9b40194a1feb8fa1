package events

import (
	"time"

	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

// Option applies a configuration option to the KafkaPublisher.
type Option func(*KafkaPublisher)

// WithDealTopic overrides the topic for deal scored events.
func WithDealTopic(topic string) Option {
	return func(p *KafkaPublisher) {
		if topic != "" {
			p.dealTopic = topic
		}
	}
}

// WithMatchTopic overrides the topic for match generated events.
func WithMatchTopic(topic string) Option {
	return func(p *KafkaPublisher) {
		if topic != "" {
			p.matchTopic = topic
		}
	}
}

// WithWriteTimeout bounds how long a publish may block.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.writeTimeout = d
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(p *KafkaPublisher) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the publisher.
func WithLogger(l logger.Logger) Option {
	return func(p *KafkaPublisher) {
		if l != nil {
			p.logger = l
		}
	}
}
