package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer interface defines the contract for publishing confirmation events
type Producer interface {
	PublishReservationConfirmed(ctx context.Context, event *ReservationConfirmedEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka producer
type KafkaProducerConfig struct {
	Brokers           []string
	ConfirmationTopic string
	RetryMax          int
	TimeoutMs         int
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		ConfirmationTopic: "reservation-confirmations",
		RetryMax:          3,
		TimeoutMs:         10000,             // 10 seconds
		RequiredAcks:      sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000, // 1MB
	}
}

// KafkaProducer publishes reservation confirmation events to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a new Kafka confirmation event producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one session's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	// Create the producer
	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	kafkaProducer := &KafkaProducer{
		producer: producer,
		config:   config,
	}

	log.Printf("📤 Kafka confirmation producer created successfully")
	return kafkaProducer, nil
}

// PublishReservationConfirmed publishes a single confirmation event to Kafka
func (kp *KafkaProducer) PublishReservationConfirmed(ctx context.Context, event *ReservationConfirmedEvent) error {
	// Update event status
	event.Status = EventStatusQueued
	event.UpdatedAt = time.Now()

	// Serialize event to JSON
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation event: %w", err)
	}

	// Create Kafka message
	message := &sarama.ProducerMessage{
		Topic:     kp.config.ConfirmationTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kp.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	// Send message
	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		event.Status = EventStatusFailed
		errorStr := err.Error()
		event.LastError = &errorStr
		return fmt.Errorf("failed to send confirmation event to Kafka: %w", err)
	}

	log.Printf("📤 Confirmation event published to Kafka - Topic: %s, Partition: %d, Offset: %d, Session: %s",
		kp.config.ConfirmationTopic, partition, offset, event.SessionID)

	return nil
}

// createHeaders builds Kafka message headers for the event
func (kp *KafkaProducer) createHeaders(event *ReservationConfirmedEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(event.Type),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(event.ID.String()),
		},
		{
			Key:   []byte("session_id"),
			Value: []byte(event.SessionID.String()),
		},
	}
}

// Close shuts down the producer
func (kp *KafkaProducer) Close() error {
	if err := kp.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	log.Printf("📤 Kafka confirmation producer closed")
	return nil
}

// HealthCheck verifies the producer is usable
func (kp *KafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("kafka producer is not initialized")
	}
	return nil
}
