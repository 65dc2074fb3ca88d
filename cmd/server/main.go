package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	articleHTTP "github.com/pandamarket/backend/internal/article/delivery/http"
	articleRepo "github.com/pandamarket/backend/internal/article/repository"
	commentHTTP "github.com/pandamarket/backend/internal/comment/delivery/http"
	commentRepo "github.com/pandamarket/backend/internal/comment/repository"
	favoriteHTTP "github.com/pandamarket/backend/internal/favorite/delivery/http"
	favoriteRepo "github.com/pandamarket/backend/internal/favorite/repository"
	favoriteQuery "github.com/pandamarket/backend/internal/favorite/usecase/query"
	productHTTP "github.com/pandamarket/backend/internal/product/delivery/http"
	productRepo "github.com/pandamarket/backend/internal/product/repository"
	"github.com/pandamarket/backend/internal/target"
	userHTTP "github.com/pandamarket/backend/internal/user/delivery/http"
	userRepo "github.com/pandamarket/backend/internal/user/repository"
	"github.com/pandamarket/backend/kafka"
	"github.com/pandamarket/backend/pkg/cache"
	"github.com/pandamarket/backend/pkg/database"
	"github.com/pandamarket/backend/pkg/logger"
	"github.com/pandamarket/backend/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "pandamarket-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting pandamarket API")

	// Initialize tracer
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

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "pandamarket"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories
	resolver := target.NewResolver()
	users := userRepo.NewGormUserRepository(db)
	products := productRepo.NewGormProductRepository(db)
	articles := articleRepo.NewGormArticleRepository(db)
	favorites := favoriteRepo.NewGormFavoriteRepositoryWithTracing(db, resolver)
	comments := commentRepo.NewGormCommentRepositoryWithTracing(db, resolver)

	for _, migrate := range []func() error{
		users.AutoMigrate,
		products.AutoMigrate,
		articles.AutoMigrate,
		favorites.AutoMigrate,
		comments.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional; the API degrades to no event emission
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Redis cache is optional as well
	var responseCache *cache.Cache
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		responseCache, err = cache.New(addr)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect to Redis, caching disabled")
			responseCache = nil
		} else {
			defer responseCache.Close()
		}
	}

	isFavorited := favoriteQuery.NewIsFavoritedHandler(favorites)

	// Initialize HTTP handlers
	userHandler := userHTTP.NewUserHandler(users)
	productHandler := productHTTP.NewProductHandler(products, isFavorited, responseCache)
	articleHandler := articleHTTP.NewArticleHandler(articles, isFavorited, responseCache)
	favoriteHandler := favoriteHTTP.NewFavoriteHandler(favorites, publisher, responseCache)
	commentHandler := commentHTTP.NewCommentHandler(comments, publisher)

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	articleHandler.RegisterRoutes(router)
	favoriteHandler.RegisterRoutes(router)
	commentHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := sqlDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"success":false,"error":"database unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"message":"pandamarket API is healthy"}`))
	}).Methods("GET")

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "http.server")

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
