package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pandamarket/backend/internal/middleware"
	"github.com/pandamarket/backend/internal/user/domain"
	"github.com/pandamarket/backend/internal/user/usecase/command"
	"github.com/pandamarket/backend/internal/user/usecase/query"
	"github.com/pandamarket/backend/pkg/logger"
)

// UserHandler handles HTTP requests for users using CQRS pattern
type UserHandler struct {
	// Command handlers
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalUsers     prometheus.Gauge

	repo domain.UserRepository
}

// NewUserHandler creates a new user handler with CQRS pattern (manual DI)
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	registerHandler := command.NewRegisterUserHandler(repo)
	loginHandler := command.NewLoginUserHandler(repo)
	getUserHandler := query.NewGetUserHandler(repo)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "user_service_request_duration_summary",
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

	totalUsers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_total_users",
			Help: "Total number of registered users",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalUsers)

	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		getUserHandler:  getUserHandler,
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		requestSummary:  requestSummary,
		totalUsers:      totalUsers,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/register", h.metricsMiddleware("/api/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/login", h.metricsMiddleware("/api/auth/login", h.Login)).Methods("POST")

	me := h.metricsMiddleware("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		middleware.AuthMiddleware(http.HandlerFunc(h.Me)).ServeHTTP(w, r)
	})
	router.HandleFunc("/api/users/me", me).Methods("GET")
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RegisterUserCommand{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrNicknameTaken):
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
		default:
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		}
		return
	}

	h.updateUsersMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	result, err := h.loginHandler.Handle(cmd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, Response{
				Success: false,
				Error:   "Invalid email or password",
			})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to login user")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    result,
	})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.getUserHandler.Handle(query.GetUserQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "User not found",
			})
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to get user")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get user",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// updateUsersMetric updates the total users gauge
func (h *UserHandler) updateUsersMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalUsers.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
