package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	favoritequery "github.com/pandamarket/backend/internal/favorite/usecase/query"
	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/internal/product/domain"
	"github.com/pandamarket/backend/internal/product/usecase/command"
	"github.com/pandamarket/backend/internal/product/usecase/query"
	"github.com/pandamarket/backend/internal/target"
	"github.com/pandamarket/backend/pkg/cache"
	"github.com/pandamarket/backend/pkg/logger"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getHandler         *query.GetProductHandler
	listHandler        *query.ListProductsHandler
	isFavoritedHandler *favoritequery.IsFavoritedHandler

	cache *cache.Cache

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge

	repo domain.ProductRepository
}

// NewProductHandler creates a new product handler with CQRS pattern (manual DI)
func NewProductHandler(repo domain.ProductRepository, isFavoritedHandler *favoritequery.IsFavoritedHandler, c *cache.Cache) *ProductHandler {
	createHandler := command.NewCreateProductHandler(repo)
	updateHandler := command.NewUpdateProductHandler(repo)
	deleteHandler := command.NewDeleteProductHandler(repo)
	getHandler := query.NewGetProductHandler(repo)
	listHandler := query.NewListProductsHandler(repo)

	return newProductHandler(
		createHandler, updateHandler, deleteHandler,
		getHandler, listHandler, isFavoritedHandler,
		repo, c,
	)
}

// newProductHandler is the internal constructor
func newProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	isFavoritedHandler *favoritequery.IsFavoritedHandler,
	repo domain.ProductRepository,
	c *cache.Cache,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_service_requests_total",
			Help: "Total number of requests to product service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_service_request_duration_seconds",
			Help:    "Duration of product service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "product_service_request_duration_summary",
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

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_service_total_products",
			Help: "Total number of products in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		getHandler:         getHandler,
		listHandler:        listHandler,
		isFavoritedHandler: isFavoritedHandler,
		repo:               repo,
		cache:              c,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		requestSummary:     requestSummary,
		totalProducts:      totalProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// productDetail wraps a product with the caller's favorite state
type productDetail struct {
	domain.Product
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
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
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
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", optional("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/products", auth("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id:[0-9]+}", auth("/api/products/{id}", h.UpdateProduct)).Methods("PATCH")
	router.HandleFunc("/api/products/{id:[0-9]+}", auth("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       int64    `json:"price"`
		Images      []string `json:"images"`
		Tags        []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateProductCommand{
		OwnerID:     middleware.UserIDFromContext(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	q := query.ListProductsQuery{
		Keyword:  r.URL.Query().Get("keyword"),
		Order:    r.URL.Query().Get("orderBy"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
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

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	cacheKey := "product:" + vars["id"]

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

	product, err := h.getHandler.Handle(query.GetProductQuery{ProductID: uint(id)})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Product not found",
			})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to get product")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get product",
		})
		return
	}

	isFavorite := false
	if userID != 0 && h.isFavoritedHandler != nil {
		isFavorite, _ = h.isFavoritedHandler.Handle(favoritequery.IsFavoritedQuery{
			UserID:     userID,
			TargetType: target.TypeProduct.String(),
			TargetID:   uint(id),
		})
	}

	resp := Response{
		Success: true,
		Data:    productDetail{Product: *product, IsFavorite: isFavorite},
	}

	if userID == 0 && h.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.cache.Set(r.Context(), cacheKey, body, cache.DefaultTTL)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *int64   `json:"price"`
		Images      []string `json:"images"`
		Tags        []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ProductID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Tags:        req.Tags,
	}

	product, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondProductError(w, err, "Failed to update product")
		return
	}

	h.invalidateCache(r, uint(id))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	cmd := command.DeleteProductCommand{
		ProductID:   uint(id),
		RequesterID: middleware.UserIDFromContext(r.Context()),
	}

	if err := h.deleteHandler.Handle(cmd); err != nil {
		h.respondProductError(w, err, "Failed to delete product")
		return
	}

	h.invalidateCache(r, uint(id))
	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	case errors.Is(err, domain.ErrNotOwner):
		respondJSON(w, http.StatusForbidden, Response{Success: false, Error: "Not the product owner"})
	default:
		logger.Logger.Error().Err(err).Msg(msg)
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

func (h *ProductHandler) invalidateCache(r *http.Request, id uint) {
	if h.cache == nil {
		return
	}
	h.cache.Delete(r.Context(), "product:"+strconv.FormatUint(uint64(id), 10))
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric() {
	count, err := h.repo.Count("")
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
