package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandamarket/backend/pkg/logger"
)

// Consumer wraps Kafka consumer
type Consumer struct {
	consumer        sarama.ConsumerGroup
	brokers         []string
	groupID         string
	topics          []string
	favoriteHandler FavoriteEventHandler
	commentHandler  CommentEventHandler
	handlersMutex   sync.RWMutex
}

// FavoriteEventHandler handles favorite activity events
type FavoriteEventHandler func(ctx context.Context, event FavoriteEvent) error

// CommentEventHandler handles comment activity events
type CommentEventHandler func(ctx context.Context, event CommentEvent) error

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		consumer: consumer,
		brokers:  brokers,
		groupID:  groupID,
		topics:   topics,
	}, nil
}

// RegisterFavoriteHandler registers the handler for favorite events
func (c *Consumer) RegisterFavoriteHandler(handler FavoriteEventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.favoriteHandler = handler
	logger.Logger.Info().Msg("Favorite event handler registered")
}

// RegisterCommentHandler registers the handler for comment events
func (c *Consumer) RegisterCommentHandler(handler CommentEventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.commentHandler = handler
	logger.Logger.Info().Msg("Comment event handler registered")
}

// Start starts consuming messages
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		consumer: c,
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping...")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().
						Err(err).
						Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().
				Err(err).
				Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	// Extract trace context from Kafka headers
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		key := string(header.Key)
		if key == "traceparent" || key == "tracestate" {
			carrier[key] = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.String("messaging.source_kind", "topic"),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	eventType := ""
	eventID := ""
	for _, header := range message.Headers {
		if string(header.Key) == "event_type" {
			eventType = string(header.Value)
		}
		if string(header.Key) == "event_id" {
			eventID = string(header.Value)
		}
	}

	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Logger.Warn().Msg("Message without event_type header")
		return
	}

	span.SetAttributes(
		attribute.String("event.type", eventType),
		attribute.String("event.id", eventID),
	)

	switch eventType {
	case EventTypeFavoriteAdded, EventTypeFavoriteRemoved:
		var event FavoriteEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to unmarshal event")
			logger.Logger.Error().
				Err(err).
				Str("event_type", eventType).
				Msg("Failed to unmarshal event")
			return
		}

		span.SetAttributes(
			attribute.String("target.type", event.TargetType),
			attribute.Int64("target.id", int64(event.TargetID)),
		)

		h.consumer.handlersMutex.RLock()
		handler := h.consumer.favoriteHandler
		h.consumer.handlersMutex.RUnlock()
		if handler == nil {
			span.SetStatus(codes.Error, "No handler registered")
			logger.Logger.Warn().
				Str("event_type", eventType).
				Msg("No handler registered for event type")
			return
		}

		if err := handler(ctx, event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to handle event")
			logger.Logger.Error().
				Err(err).
				Str("event_type", eventType).
				Str("event_id", event.EventID).
				Str("trace_id", span.SpanContext().TraceID().String()).
				Msg("Failed to handle event")
			return
		}

		span.SetStatus(codes.Ok, "Event handled successfully")

	case EventTypeCommentCreated:
		var event CommentEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to unmarshal event")
			logger.Logger.Error().
				Err(err).
				Str("event_type", eventType).
				Msg("Failed to unmarshal event")
			return
		}

		span.SetAttributes(
			attribute.String("target.type", event.TargetType),
			attribute.Int64("target.id", int64(event.TargetID)),
			attribute.Int64("comment.id", int64(event.CommentID)),
		)

		h.consumer.handlersMutex.RLock()
		handler := h.consumer.commentHandler
		h.consumer.handlersMutex.RUnlock()
		if handler == nil {
			span.SetStatus(codes.Error, "No handler registered")
			logger.Logger.Warn().
				Str("event_type", eventType).
				Msg("No handler registered for event type")
			return
		}

		if err := handler(ctx, event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to handle event")
			logger.Logger.Error().
				Err(err).
				Str("event_type", eventType).
				Str("event_id", event.EventID).
				Str("trace_id", span.SpanContext().TraceID().String()).
				Msg("Failed to handle event")
			return
		}

		span.SetStatus(codes.Ok, "Event handled successfully")

	default:
		span.SetStatus(codes.Error, "Unknown event type")
		logger.Logger.Warn().
			Str("event_type", eventType).
			Msg("Unknown event type")
	}
}
