package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Domain event types published on the hotel events topic.
const (
	EventNewBooking      = "new_booking"
	EventNewEvent        = "new_event"
	EventNewInquiry      = "new_inquiry"
	EventCheckIn         = "check_in"
	EventCheckOut        = "check_out"
	EventPaymentReceived = "payment_received"
	EventPaymentReversed = "payment_reversed"
)

// DomainEvent is the envelope written to Kafka.
type DomainEvent struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

var kafkaWriter *kafka.Writer
var kafkaTopic string

// KafkaBrokers returns the broker list from the environment.
func KafkaBrokers() []string {
	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	if len(brokers) == 1 && brokers[0] == "" {
		brokers = []string{"localhost:9092"}
	}
	return brokers
}

// KafkaTopic returns the hotel events topic name.
func KafkaTopic() string {
	if kafkaTopic != "" {
		return kafkaTopic
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "hotel.events"
	}
	kafkaTopic = topic
	return topic
}

// InitializeKafka sets up the shared event writer.
func InitializeKafka() {
	brokers := KafkaBrokers()

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        KafkaTopic(),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	log.Println("✅ Kafka producer ready:", strings.Join(brokers, ","))
}

// PublishEvent writes a domain event. Keyed by type so consumers can partition sensibly.
func PublishEvent(ctx context.Context, eventType string, payload map[string]interface{}) error {
	if kafkaWriter == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	evt := DomainEvent{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}

	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: data,
	})
}

// PublishEventAsync publishes in the background with retries so request
// handlers never block on the broker.
func PublishEventAsync(eventType string, payload map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		for attempt := 1; attempt <= 3; attempt++ {
			if err = PublishEvent(ctx, eventType, payload); err == nil {
				return
			}
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		log.Printf("❌ Failed to publish %s event after retries: %v", eventType, err)
	}()
}

// NewKafkaReader builds a consumer group reader for the events topic.
func NewKafkaReader() *kafka.Reader {
	groupID := os.Getenv("KAFKA_GROUP_ID")
	if groupID == "" {
		groupID = "hotel-backend"
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  KafkaBrokers(),
		GroupID:  groupID,
		Topic:    KafkaTopic(),
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
