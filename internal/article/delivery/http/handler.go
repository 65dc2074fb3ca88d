package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/backend/internal/article/domain"
	"github.com/pandamarket/backend/internal/article/usecase/command"
	"github.com/pandamarket/backend/internal/article/usecase/query"
	favoritequery "github.com/pandamarket/backend/internal/favorite/usecase/query"
	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/pkg/cache"
	"github.com/pandamarket/backend/pkg/logger"
)

// ArticleHandler handles HTTP requests for articles using CQRS pattern
type ArticleHandler struct {
	// Command handlers
	createHandler *command.CreateArticleHandler
	updateHandler *command.UpdateArticleHandler
	deleteHandler *command.DeleteArticleHandler

	// Query handlers
	getHandler         *query.GetArticleHandler
	listHandler        *query.ListArticlesHandler
	isFavoritedHandler *favoritequery.IsFavoritedHandler

	cache *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewArticleHandler creates a new article handler with CQRS pattern (manual DI)
func NewArticleHandler(repo domain.ArticleRepository, isFavoritedHandler *favoritequery.IsFavoritedHandler, c *cache.Cache) *ArticleHandler {
	createHandler := command.NewCreateArticleHandler(repo)
	updateHandler := command.NewUpdateArticleHandler(repo)
	deleteHandler := command.NewDeleteArticleHandler(repo)
	getHandler := query.NewGetArticleHandler(repo)
	listHandler := query.NewListArticlesHandler(repo)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_service_requests_total",
			Help: "Total number of requests to article service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_service_request_duration_seconds",
			Help:    "Duration of article service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "article_service_request_duration_summary",
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

	return &ArticleHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		isFavoritedHandler: isFavoritedHandler,
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

// articleDetail wraps an article with the caller's favorite state
type articleDetail struct {
	domain.Article
	IsFavorite bool `json:"is_favorite"`
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
func (h *ArticleHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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

func (h *ArticleHandler) RegisterRoutes(router *mux.Router) {
	auth := func(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
		return h.metricsMiddleware(endpoint, func(w http.ResponseWriter, r *http.Request) {
			middleware.AuthMiddleware(fn).ServeHTTP(w, r)
		})
	}
	optional := func(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
		return h.metricsMiddleware(endpoint, func(w http.ResponseWriter, r *http.Request) {
			middleware.OptionalAuthMiddleware(fn).ServeHTTP(w, r)
		})
	}

	// Public routes (no auth required)
	router.HandleFunc("/api/articles", h.metricsMiddleware("/api/articles", h.ListArticles)).Methods("GET")
	router.HandleFunc("/api/articles/{id:[0-9]+}", optional("/api/articles/{id}", h.GetArticle)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/articles", auth("/api/articles", h.CreateArticle)).Methods("POST")
	router.HandleFunc("/api/articles/{id:[0-9]+}", auth("/api/articles/{id}", h.UpdateArticle)).Methods("PATCH")
	router.HandleFunc("/api/articles/{id:[0-9]+}", auth("/api/articles/{id}", h.DeleteArticle)).Methods("DELETE")
}

// CreateArticle handles POST /api/articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Image   string `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateArticleCommand{
		AuthorID: middleware.UserIDFromContext(r.Context()),
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
	}

	article, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create article")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Article created successfully",
		Data:    article,
	})
}

// ListArticles handles GET /api/articles
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	q := query.ListArticlesQuery{
		Keyword:  r.URL.Query().Get("keyword"),
		Order:    r.URL.Query().Get("orderBy"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list articles")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetArticle handles GET /api/articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid article ID",
		})
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cacheKey := "article:" + vars["id"]

	// Anonymous requests can be served from cache as is_favorite is always
	// false for them
	if userID == 0 && h.cache != nil {
		if cached := h.cache.Get(r.Context(), cacheKey); cached != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	article, err := h.getHandler.Handle(query.GetArticleQuery{ArticleID: uint(id)})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Article not found",
			})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to get article")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get article",
		})
		return
	}

	isFavorite := false
	if userID != 0 && h.isFavoritedHandler != nil {
		isFavorite, _ = h.isFavoritedHandler.Handle(favoritequery.IsFavoritedQuery{
			UserID:     userID,
			TargetType: target.TypeArticle.String(),
			TargetID:   uint(id),
		})
	}

	resp := Response{
		Success: true,
		Data:    articleDetail{Article: *article, IsFavorite: isFavorite},
	}

	if userID == 0 && h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.cache.Set(r.Context(), cacheKey, body, cache.DefaultTTL)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// UpdateArticle handles PATCH /api/articles/{id}
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid article ID",
		})
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Image   *string `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateArticleCommand{
		ArticleID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
	}

	article, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondArticleError(w, err, "Failed to update article")
		return
	}

	h.invalidateCache(r, uint(id))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Article updated successfully",
		Data:    article,
	})
}

// DeleteArticle handles DELETE /api/articles/{id}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid article ID",
		})
		return
	}

	cmd := command.DeleteArticleCommand{
		ArticleID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
	}

	if err := h.deleteHandler.Handle(cmd); err != nil {
		h.respondArticleError(w, err, "Failed to delete article")
		return
	}

	h.invalidateCache(r, uint(id))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Article deleted successfully",
	})
}

func (h *ArticleHandler) respondArticleError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Article not found"})
	case errors.Is(err, domain.ErrNotAuthor):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Not the article author"})
	default:
		logger.Logger.Error().Err(err).Msg(msg)
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

func (h *ArticleHandler) invalidateCache(r *http.Request, id uint) {
	if h.cache == nil {
		return
	}
	h.cache.Delete(r.Context(), "article:"+strconv.FormatUint(uint64(id), 10))
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
