//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"

	"github.com/sage-glasses/service-navigation/internal/application"
	"github.com/sage-glasses/service-navigation/internal/events"
	"github.com/sage-glasses/service-navigation/internal/routing"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	KafkaBrokers []string
	Cleanup      func()
}

// navStack holds wired-up navigation service components.
type navStack struct {
	Service         *application.NavigationService
	Consumer        *events.DeviceCommandConsumer
	CleanupProducer func()
}

// setupContainers starts a Kafka testcontainer and pre-creates the topics.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicNavigationCommands, events.TopicNavigationEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	}

	return &testInfra{
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// startGeoStubs starts stub Nominatim and OSRM servers serving a fixed
// two-step walking route. The caller closes both.
func startGeoStubs(t *testing.T) (nominatim, osrm *httptest.Server) {
	t.Helper()

	nominatim = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"display_name": "Lulu Mall, Edappally", "lat": "10.0273", "lon": "76.3082"}]`)
	}))
	osrm = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
  "code": "Ok",
  "routes": [{
    "distance": 1820.4,
    "duration": 1311.0,
    "legs": [{
      "steps": [
        {"maneuver": {"type": "depart", "modifier": "north", "location": [76.3125, 10.0261]},
         "name": "Banerji Rd", "distance": 250.0},
        {"maneuver": {"type": "arrive", "modifier": "", "location": [76.3082, 10.0273]},
         "name": "", "distance": 1570.4}
      ]
    }]
  }]
}`)
	}))
	return nominatim, osrm
}

// setupNavigationStack wires up the full navigation service stack against the
// stub geo servers and the test Kafka brokers.
func setupNavigationStack(t *testing.T, brokers []string, nominatimURL, osrmURL string) *navStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	provider := routing.NewProvider(nominatimURL, osrmURL, 10*time.Second, logger)
	producer := events.NewProducer(brokers, logger)
	publisher := events.NewKafkaEventPublisher(producer, logger)
	navSvc := application.NewNavigationService(provider, publisher, logger, 50)

	groupID := fmt.Sprintf("test-navigation-%s", uuid.New().String()[:8])
	consumer := events.NewDeviceCommandConsumer(brokers, groupID, navSvc, logger)

	return &navStack{
		Service:         navSvc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestCommand publishes a device command as a CloudEvent to the
// commands topic.
func publishTestCommand(t *testing.T, brokers []string, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := events.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := events.NewCloudEvent("device-gateway", eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), events.TopicNavigationCommands, "glasses-1", ce)
	require.NoError(t, err, "failed to publish command")
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
