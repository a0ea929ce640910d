package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sage-glasses/service-navigation/internal/application"
)

// DeviceCommandConsumer listens to the device gateway's navigation commands
// and dispatches them to the navigation engine. This is the service's ingress
// in production; the gateway terminates the device transport and forwards
// spoken intents and GPS fixes onto the bus.
type DeviceCommandConsumer struct {
	consumer *Consumer
	service  *application.NavigationService
	logger   *zap.Logger
}

// NewDeviceCommandConsumer creates a DeviceCommandConsumer.
func NewDeviceCommandConsumer(
	brokers []string,
	groupID string,
	service *application.NavigationService,
	logger *zap.Logger,
) *DeviceCommandConsumer {
	consumer := NewConsumer(brokers, groupID, TopicNavigationCommands, logger)
	return &DeviceCommandConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming command events. Blocks until the context is
// cancelled.
func (c *DeviceCommandConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *DeviceCommandConsumer) Close() error {
	return c.consumer.Close()
}

func (c *DeviceCommandConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from command topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case NavigationStartRequested:
		return c.handleStart(ctx, cloudEvent)
	case LocationFixReported:
		return c.handleLocationFix(ctx, cloudEvent)
	case NavigationStopRequested:
		return c.handleStop(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled command type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *DeviceCommandConsumer) handleStart(ctx context.Context, cloudEvent CloudEvent) error {
	var cmd StartNavigationCommand
	if err := cloudEvent.ParseData(&cmd); err != nil {
		c.logger.Error("failed to parse StartNavigationCommand", zap.Error(err))
		return nil
	}

	handle, err := c.service.StartNavigation(ctx, cmd.Destination)
	if err != nil {
		c.logger.Warn("rejected start command",
			zap.String("destination", cmd.Destination),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("navigation start dispatched",
		zap.String("session_id", handle.SessionID.String()),
		zap.String("destination", handle.Destination),
		zap.Bool("replaced", handle.Replaced),
	)
	return nil
}

func (c *DeviceCommandConsumer) handleLocationFix(ctx context.Context, cloudEvent CloudEvent) error {
	var cmd LocationFixCommand
	if err := cloudEvent.ParseData(&cmd); err != nil {
		c.logger.Error("failed to parse LocationFixCommand", zap.Error(err))
		return nil
	}

	evt := c.service.UpdateLocation(ctx, cmd.Latitude, cmd.Longitude)
	if evt == nil {
		return nil
	}
	if evt.Error != "" {
		c.logger.Warn("location fix produced an error",
			zap.String("error", evt.Error),
			zap.String("status", evt.Status),
		)
	}
	return nil
}

func (c *DeviceCommandConsumer) handleStop(ctx context.Context, cloudEvent CloudEvent) error {
	var cmd StopNavigationCommand
	if err := cloudEvent.ParseData(&cmd); err != nil {
		c.logger.Error("failed to parse StopNavigationCommand", zap.Error(err))
		return nil
	}

	if c.service.StopNavigation(ctx) {
		c.logger.Info("navigation stop dispatched", zap.String("reason", cmd.Reason))
	}
	return nil
}
