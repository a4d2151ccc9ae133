package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/generate"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Generator   *generate.Generator // Required
	Store       *content.Store      // Required
	CORSOrigins []string            // Allowed origins for CORS
	IsDev       bool                // Disables HSTS
	TrustProxy  bool                // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateLimit   float64             // Tokens per second per IP (0 = defaultRateLimit)
	RateBurst   int                 // Rate limiter burst size per IP (0 = defaultRateBurst)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("content store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gh := &generateHandler{gen: cfg.Generator, store: cfg.Store, logger: logger}
	ch := &contentsHandler{store: cfg.Store, logger: logger}

	mux := http.NewServeMux()

	// Generation
	mux.HandleFunc("POST /api/v1/generate/lesson-plan", gh.lessonPlan)
	mux.HandleFunc("POST /api/v1/generate/quiz", gh.quiz)
	mux.HandleFunc("POST /api/v1/generate/worksheet", gh.worksheet)
	mux.HandleFunc("POST /api/v1/generate/presentation", gh.presentation)
	mux.HandleFunc("POST /api/v1/generate/assessment", gh.assessment)

	// Saved documents
	mux.HandleFunc("GET /api/v1/contents", ch.list)
	mux.HandleFunc("POST /api/v1/contents", ch.save)

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	rl := newRateLimiter(limit, burst)

	// Build middleware stack (outermost first):
	//   Recovery → Logging → CORS → RateLimit → Auth → Routes
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS
	// headers.
	var handler http.Handler = mux
	handler = authMiddleware()(handler)
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = recoveryMiddleware(logger)(handler)

	isDev := cfg.IsDev
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w, isDev)
		handler.ServeHTTP(w, r)
	})

	// Top-level mux separates the health probe from the middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /healthz", health)
	topMux.Handle("/", final)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
