package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/backend/internal/favorite/domain"
	"github.com/pandamarket/backend/internal/favorite/usecase/command"
	"github.com/pandamarket/backend/internal/favorite/usecase/query"
	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/kafka"
	"github.com/pandamarket/backend/pkg/cache"
	"github.com/pandamarket/backend/pkg/logger"
)

// FavoriteHandler handles HTTP requests for favorites using CQRS pattern
type FavoriteHandler struct {
	// Command handlers
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler

	// Query handlers
	isFavoritedHandler *query.IsFavoritedHandler

	publisher *kafka.Publisher
	cache     *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewFavoriteHandler creates a new favorite handler with CQRS pattern (manual DI)
func NewFavoriteHandler(repo domain.FavoriteRepository, publisher *kafka.Publisher, c *cache.Cache) *FavoriteHandler {
	addHandler := command.NewAddFavoriteHandler(repo)
	removeHandler := command.NewRemoveFavoriteHandler(repo)
	isFavoritedHandler := query.NewIsFavoritedHandler(repo)

	return newFavoriteHandler(addHandler, removeHandler, isFavoritedHandler, publisher, c)
}

// NewFavoriteHandlerWithDI creates a new favorite handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	isFavoritedHandler *query.IsFavoritedHandler,
	publisher *kafka.Publisher,
	c *cache.Cache,
) *FavoriteHandler {
	return newFavoriteHandler(addHandler, removeHandler, isFavoritedHandler, publisher, c)
}

// newFavoriteHandler is the internal constructor used by both manual and Wire DI
func newFavoriteHandler(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	isFavoritedHandler *query.IsFavoritedHandler,
	publisher *kafka.Publisher,
	c *cache.Cache,
) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_service_requests_total",
			Help: "Total number of requests to favorite service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorite_service_request_duration_seconds",
			Help:    "Duration of favorite service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "favorite_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)

	return &FavoriteHandler{
		addHandler:         addHandler,
		removeHandler:      removeHandler,
		isFavoritedHandler: isFavoritedHandler,
		publisher:          publisher,
		cache:              c,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		requestSummary:     requestSummary,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	auth := func(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
		return h.metricsMiddleware(endpoint, func(w http.ResponseWriter, r *http.Request) {
			middleware.AuthMiddleware(fn).ServeHTTP(w, r)
		})
	}

	router.HandleFunc("/api/products/{id}/favorite", auth("/api/products/{id}/favorite", h.AddFavorite)).Methods("POST")
	router.HandleFunc("/api/products/{id}/favorite", auth("/api/products/{id}/favorite", h.RemoveFavorite)).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/favorite", auth("/api/products/{id}/favorite", h.GetFavoriteStatus)).Methods("GET")
	router.HandleFunc("/api/articles/{id}/favorite", auth("/api/articles/{id}/favorite", h.AddFavorite)).Methods("POST")
	router.HandleFunc("/api/articles/{id}/favorite", auth("/api/articles/{id}/favorite", h.RemoveFavorite)).Methods("DELETE")
	router.HandleFunc("/api/articles/{id}/favorite", auth("/api/articles/{id}/favorite", h.GetFavoriteStatus)).Methods("GET")
}

// GetFavoriteStatus handles GET /api/{products|articles}/{id}/favorite
func (h *FavoriteHandler) GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
	targetType, targetID, ok := h.parseTarget(w, r)
	if !ok {
		return
	}

	isFavorite, err := h.isFavoritedHandler.Handle(query.IsFavoritedQuery{
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondFavoriteError(w, err, "Failed to check favorite status")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]bool{"is_favorite": isFavorite},
	})
}

// AddFavorite handles POST /api/{products|articles}/{id}/favorite
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	targetType, targetID, ok := h.parseTarget(w, r)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	cmd := command.AddFavoriteCommand{
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
	}

	result, err := h.addHandler.Handle(cmd)
	if err != nil {
		h.respondFavoriteError(w, err, "Failed to add favorite")
		return
	}

	h.invalidateCache(r, result.Target.Type, result.Target.ID)
	h.publishEvent(r, kafka.EventTypeFavoriteAdded, userID, result.Target)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Favorite added successfully",
		Data:    result,
	})
}

// RemoveFavorite handles DELETE /api/{products|articles}/{id}/favorite
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	targetType, targetID, ok := h.parseTarget(w, r)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(r.Context())

	cmd := command.RemoveFavoriteCommand{
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
	}

	result, err := h.removeHandler.Handle(cmd)
	if err != nil {
		h.respondFavoriteError(w, err, "Failed to remove favorite")
		return
	}

	h.invalidateCache(r, result.Target.Type, result.Target.ID)
	h.publishEvent(r, kafka.EventTypeFavoriteRemoved, userID, result.Target)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Favorite removed successfully",
		Data:    result,
	})
}

// parseTarget derives the target type from the route path and the id from the
// path variable
func (h *FavoriteHandler) parseTarget(w http.ResponseWriter, r *http.Request) (string, uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid target ID",
		})
		return "", 0, false
	}

	tmpl, _ := mux.CurrentRoute(r).GetPathTemplate()
	targetType := target.TypeProduct.String()
	if strings.HasPrefix(tmpl, "/api/articles") {
		targetType = target.TypeArticle.String()
	}
	return targetType, uint(id), true
}

func (h *FavoriteHandler) respondFavoriteError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, target.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Target not found"})
	case errors.Is(err, domain.ErrAlreadyFavorited):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Already favorited"})
	case errors.Is(err, domain.ErrNotFavorited):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: "Not favorited"})
	case errors.Is(err, target.ErrUnknownType):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		logger.Logger.Error().Err(err).Msg(msg)
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: msg})
	}
}

func (h *FavoriteHandler) invalidateCache(r *http.Request, targetType target.Type, targetID uint) {
	if h.cache == nil {
		return
	}
	key := targetType.String() + ":" + strconv.FormatUint(uint64(targetID), 10)
	h.cache.Delete(r.Context(), key)
}

func (h *FavoriteHandler) publishEvent(r *http.Request, eventType string, userID uint, t target.Target) {
	if h.publisher == nil {
		return
	}
	event := kafka.FavoriteEvent{
		UserID:        userID,
		TargetType:    t.Type.String(),
		TargetID:      t.ID,
		OwnerID:       t.OwnerID,
		FavoriteCount: t.FavoriteCount,
	}
	if err := h.publisher.PublishFavoriteEvent(r.Context(), eventType, event); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to publish favorite event")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
