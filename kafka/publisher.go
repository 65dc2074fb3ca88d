package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandamarket/backend/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishFavoriteEvent publishes a favorite added/removed event with tracing
func (p *Publisher) PublishFavoriteEvent(ctx context.Context, eventType string, event FavoriteEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.favorite",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicFavoriteActivity),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("target.type", event.TargetType),
			attribute.Int64("target.id", int64(event.TargetID)),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = eventType
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	key := fmt.Sprintf("%s_%d", event.TargetType, event.TargetID)
	if err := p.publish(ctx, span, TopicFavoriteActivity, eventType, event.EventID, key, event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Str("target_type", event.TargetType).
		Uint("target_id", event.TargetID).
		Uint("user_id", event.UserID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Favorite event published")

	return nil
}

// PublishCommentEvent publishes a comment created event with tracing
func (p *Publisher) PublishCommentEvent(ctx context.Context, event CommentEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.comment",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicCommentActivity),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeCommentCreated),
			attribute.String("target.type", event.TargetType),
			attribute.Int64("target.id", int64(event.TargetID)),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeCommentCreated
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	key := fmt.Sprintf("%s_%d", event.TargetType, event.TargetID)
	if err := p.publish(ctx, span, TopicCommentActivity, EventTypeCommentCreated, event.EventID, key, event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", EventTypeCommentCreated).
		Str("target_type", event.TargetType).
		Uint("target_id", event.TargetID).
		Uint("comment_id", event.CommentID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Comment event published")

	return nil
}

// publish marshals the event, injects trace context into headers and sends it
func (p *Publisher) publish(ctx context.Context, span trace.Span, topic, eventType, eventID, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(eventID),
		},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
