package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pandamarket/backend/kafka"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/tracing"
)

// The notifier consumes favorite and comment activity and logs it. It is the
// attachment point for push or email notifications to content owners.
func main() {
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "pandamarket-notifier")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "pandamarket-notifier")
	topics := []string{kafka.TopicFavoriteActivity, kafka.TopicCommentActivity}

	consumer, err := kafka.NewConsumer(brokers, groupID, topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterFavoriteHandler(func(ctx context.Context, event kafka.FavoriteEvent) error {
		logger.Info(ctx).
			Str("event_type", event.EventType).
			Uint("user_id", event.UserID).
			Str("target_type", event.TargetType).
			Uint("target_id", event.TargetID).
			Uint("owner_id", event.OwnerID).
			Int64("favorite_count", event.FavoriteCount).
			Msg("Favorite activity")
		return nil
	})

	consumer.RegisterCommentHandler(func(ctx context.Context, event kafka.CommentEvent) error {
		logger.Info(ctx).
			Uint("comment_id", event.CommentID).
			Uint("author_id", event.AuthorID).
			Str("target_type", event.TargetType).
			Uint("target_id", event.TargetID).
			Msg("Comment activity")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down notifier...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
