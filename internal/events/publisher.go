package events

import (
	"context"

	"go.uber.org/zap"
)

const eventSource = "service-navigation"

// KafkaEventPublisher adapts the Producer to the application's EventPublisher
// port. All navigation lifecycle events go to TopicNavigationEvents; publish
// failures are logged and swallowed so a broker outage never breaks a
// navigation turn.
type KafkaEventPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewKafkaEventPublisher creates a KafkaEventPublisher.
func NewKafkaEventPublisher(producer *Producer, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, logger: logger}
}

// Publish wraps data in a CloudEvent and writes it to the events topic.
func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicNavigationEvents, key, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicNavigationEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
