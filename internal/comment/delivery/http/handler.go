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

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/comment/usecase/command"
	"github.com/pandamarket/backend/internal/comment/usecase/query"
	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/kafka"
	"github.com/pandamarket/backend/pkg/logger"
)

// CommentHandler handles HTTP requests for comments using CQRS pattern
type CommentHandler struct {
	// Command handlers
	createHandler *command.CreateCommentHandler
	updateHandler *command.UpdateCommentHandler
	deleteHandler *command.DeleteCommentHandler

	// Query handlers
	listHandler *query.ListCommentsHandler

	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewCommentHandler creates a new comment handler with CQRS pattern (manual DI)
func NewCommentHandler(repo domain.CommentRepository, publisher *kafka.Publisher) *CommentHandler {
	createHandler := command.NewCreateCommentHandler(repo)
	updateHandler := command.NewUpdateCommentHandler(repo)
	deleteHandler := command.NewDeleteCommentHandler(repo)
	listHandler := query.NewListCommentsHandler(repo)

	return newCommentHandler(createHandler, updateHandler, deleteHandler, listHandler, publisher)
}

// NewCommentHandlerWithDI creates a new comment handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewCommentHandlerWithDI(
	createHandler *command.CreateCommentHandler,
	updateHandler *command.UpdateCommentHandler,
	deleteHandler *command.DeleteCommentHandler,
	listHandler *query.ListCommentsHandler,
	publisher *kafka.Publisher,
) *CommentHandler {
	return newCommentHandler(createHandler, updateHandler, deleteHandler, listHandler, publisher)
}

// newCommentHandler is the internal constructor used by both manual and Wire DI
func newCommentHandler(
	createHandler *command.CreateCommentHandler,
	updateHandler *command.UpdateCommentHandler,
	deleteHandler *command.DeleteCommentHandler,
	listHandler *query.ListCommentsHandler,
	publisher *kafka.Publisher,
) *CommentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_service_requests_total",
			Help: "Total number of requests to comment service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comment_service_request_duration_seconds",
			Help:    "Duration of comment service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "comment_service_request_duration_summary",
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

	return &CommentHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		listHandler:    listHandler,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		requestSummary: requestSummary,
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
func (h *CommentHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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

func (h *CommentHandler) RegisterRoutes(router *mux.Router) {
	auth := func(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
		return h.metricsMiddleware(endpoint, func(w http.ResponseWriter, r *http.Request) {
			middleware.AuthMiddleware(fn).ServeHTTP(w, r)
		})
	}

	// Public routes (no auth required)
	router.HandleFunc("/api/products/{id}/comments", h.metricsMiddleware("/api/products/{id}/comments", h.ListComments)).Methods("GET")
	router.HandleFunc("/api/articles/{id}/comments", h.metricsMiddleware("/api/articles/{id}/comments", h.ListComments)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/products/{id}/comments", auth("/api/products/{id}/comments", h.CreateComment)).Methods("POST")
	router.HandleFunc("/api/articles/{id}/comments", auth("/api/articles/{id}/comments", h.CreateComment)).Methods("POST")
	router.HandleFunc("/api/comments/{id}", auth("/api/comments/{id}", h.UpdateComment)).Methods("PATCH")
	router.HandleFunc("/api/comments/{id}", auth("/api/comments/{id}", h.DeleteComment)).Methods("DELETE")
}

// ListComments handles GET /api/{products|articles}/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	targetType, targetID, ok := parseTarget(w, r)
	if !ok {
		return
	}

	q := query.ListCommentsQuery{
		TargetType: targetType,
		TargetID:   targetID,
		OrderBy:    r.URL.Query().Get("orderBy"),
	}
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid cursor",
			})
			return
		}
		c := uint(cursor)
		q.Cursor = &c
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid limit",
			})
			return
		}
		q.Limit = limit
	}

	page, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondCommentError(w, err, "Failed to list comments")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    page,
	})
}

// CreateComment handles POST /api/{products|articles}/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	targetType, targetID, ok := parseTarget(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateCommentCommand{
		TargetType: targetType,
		TargetID:   targetID,
		Content:    req.Content,
		AuthorID:   middleware.UserIDFromContext(r.Context()),
	}

	view, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondCommentError(w, err, "Failed to create comment")
		return
	}

	if h.publisher != nil {
		event := kafka.CommentEvent{
			CommentID:  view.ID,
			AuthorID:   cmd.AuthorID,
			TargetType: targetType,
			TargetID:   targetID,
		}
		if err := h.publisher.PublishCommentEvent(r.Context(), event); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to publish comment event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Comment created successfully",
		Data:    view,
	})
}

// UpdateComment handles PATCH /api/comments/{id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid comment ID",
		})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateCommentCommand{
		CommentID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
		Content:     req.Content,
	}

	comment, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondCommentError(w, err, "Failed to update comment")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Comment updated successfully",
		Data:    comment,
	})
}

// DeleteComment handles DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid comment ID",
		})
		return
	}

	cmd := command.DeleteCommentCommand{
		CommentID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
	}

	if err := h.deleteHandler.Handle(cmd); err != nil {
		h.respondCommentError(w, err, "Failed to delete comment")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Comment deleted successfully",
	})
}

func (h *CommentHandler) respondCommentError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, target.ErrNotFound), errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Not found"})
	case errors.Is(err, domain.ErrNotAuthor):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Not the comment author"})
	case errors.Is(err, domain.ErrEmptyContent), errors.Is(err, target.ErrUnknownType):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		logger.Logger.Error().Err(err).Msg(msg)
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: msg})
	}
}

// parseTarget derives the target type from the route path and the id from the
// path variable
func parseTarget(w http.ResponseWriter, r *http.Request) (string, uint, bool) {
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

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
