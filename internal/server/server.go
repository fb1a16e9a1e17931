package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/industry-match/internal/config"
	"github.com/jonathan/industry-match/internal/db"
	"github.com/jonathan/industry-match/internal/logger"
	"github.com/jonathan/industry-match/internal/profile"
	"github.com/jonathan/industry-match/internal/server/middleware"
	"github.com/jonathan/industry-match/internal/server/ratelimit"
	"github.com/jonathan/industry-match/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

// ProfileStore is the persistence the HTTP handlers read from and write to.
// *db.DB implements it.
type ProfileStore interface {
	GetIndustryProfile(ctx context.Context, candidateID string) (*types.IndustryProfile, error)
	ReplaceWorkExperience(ctx context.Context, candidateID string, rows []types.WorkExperienceRow) error
	Ping(ctx context.Context) error
}

// ProfileRefresher rebuilds and persists industry profiles.
// *profile.Refresher implements it.
type ProfileRefresher interface {
	Refresh(ctx context.Context, candidateID string, rows []types.WorkExperienceRow) (*types.IndustryProfile, error)
	RefreshFromStore(ctx context.Context, candidateID string) (*types.IndustryProfile, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       ProfileStore
	refresher   ProfileRefresher
	rateLimiter *ratelimit.Limiter
	tokens      middleware.TokenValidator
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port               int
	DatabaseURL        string
	RefreshConcurrency int
	RateLimitPerMinute int
	Logger             *zap.Logger
}

// Deps are the collaborators of a Server built with NewWithDeps.
// A nil RateLimiter disables rate limiting.
type Deps struct {
	Store       ProfileStore
	Refresher   ProfileRefresher
	Tokens      middleware.TokenValidator
	RateLimiter *ratelimit.Limiter
	Logger      *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	log := logger.OrNop(cfg.Logger)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	refresher := profile.NewRefresher(database, profile.Config{
		Logger:      log,
		Concurrency: cfg.RefreshConcurrency,
	})

	s := NewWithDeps(cfg.Port, Deps{
		Store:       database,
		Refresher:   refresher,
		Tokens:      NewJWTService(jwtConfig).AsTokenValidator(),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RateLimitPerMinute)),
		Logger:      log,
	})
	s.db = database

	return s, nil
}

// NewWithDeps creates a server around existing collaborators.
func NewWithDeps(port int, deps Deps) *Server {
	s := &Server{
		store:       deps.Store,
		refresher:   deps.Refresher,
		tokens:      deps.Tokens,
		rateLimiter: deps.RateLimiter,
		logger:      logger.OrNop(deps.Logger),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Matching
	mux.HandleFunc("POST /match", s.handleMatch)

	// Taxonomy lookups
	mux.HandleFunc("GET /industries/parse", s.handleParseIndustries)
	mux.HandleFunc("GET /industries/classify", s.handleClassifyPosition)
	mux.HandleFunc("GET /industries/{tag}/related", s.handleRelatedIndustries)

	// Candidate endpoints
	mux.Handle("GET /candidates/{id}/industry-profile", s.requireAuth(s.handleGetIndustryProfile))
	mux.Handle("PUT /candidates/{id}/work-experience", s.requireAuth(s.handleReplaceWorkExperience))
	mux.Handle("POST /candidates/{id}/industry-profile/refresh", s.requireAuth(s.handleRefreshIndustryProfile))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the database pool owned by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// requireAuth wraps a handler with bearer token authentication.
func (s *Server) requireAuth(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(s.tokens)(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr writes an error JSON response with the status HTTPStatus assigns to err.
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a size-capped JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON request body"}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
