package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/fashion-assistant/internal/config"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/outfit"
	"github.com/jonathan/fashion-assistant/internal/server/ratelimit"
	"github.com/jonathan/fashion-assistant/internal/store"
	"github.com/jonathan/fashion-assistant/internal/types"
	"github.com/jonathan/fashion-assistant/internal/weather"
)

// Tagger is the tagging capability the server consumes.
type Tagger interface {
	BatchAutoTag(ctx context.Context, images [][]byte) []types.TagRecord
}

// Recommender is the recommendation capability the server consumes.
type Recommender interface {
	Generate(ctx context.Context, req outfit.Request) *types.RecommendationBundle
}

// Server is the HTTP API server.
type Server struct {
	httpServer  *http.Server
	store       *store.Store
	weather     *weather.Provider
	tagger      Tagger
	recommender Recommender
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter
	log         *observability.Logger
	maxBatch    int
}

// Deps bundles the collaborators a Server needs.
type Deps struct {
	Config      *config.Config
	Store       *store.Store
	Weather     *weather.Provider
	Tagger      Tagger
	Recommender Recommender
	Logger      *observability.Logger
}

// New creates a server instance and registers its routes.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	s := &Server{
		store:       deps.Store,
		weather:     deps.Weather,
		tagger:      deps.Tagger,
		recommender: deps.Recommender,
		jwtService:  NewJWTService(deps.Config.JWTSecret, deps.Config.JWTExpiration),
		passwords:   passwords,
		validator:   validator.New(),
		rateLimiter: ratelimit.NewLimiter(60, time.Minute),
		log:         deps.Logger,
		maxBatch:    deps.Config.MaxBatchUpload,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /weather", s.handleWeather)

	mux.HandleFunc("POST /upload", s.requireAuth(s.handleUpload))
	mux.HandleFunc("GET /wardrobe", s.requireAuth(s.handleListWardrobe))
	mux.HandleFunc("DELETE /wardrobe/{id}", s.requireAuth(s.handleDeleteItem))
	mux.HandleFunc("POST /wardrobe/batch-delete", s.requireAuth(s.handleBatchDelete))
	mux.HandleFunc("GET /profile", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /profile", s.requireAuth(s.handleSaveProfile))
	mux.HandleFunc("POST /recommendation", s.requireAuth(s.handleRecommendation))

	s.httpServer = &http.Server{
		Handler:           s.rateLimit(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start listens on the given port and blocks until shutdown.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("listening on %s", addr)
	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// rateLimit applies the per-client request limiter to every route.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeJSON encodes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
