package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/rendering"
	"github.com/jonathan/resume-parser/internal/server/ratelimit"
)

// DefaultMaxUploadBytes bounds uploaded documents when Config.MaxUploadBytes is unset
const DefaultMaxUploadBytes = 5 << 20

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 30 * time.Second

// Store persists parse results. *db.DB implements it.
type Store interface {
	SaveParsedResume(ctx context.Context, input *db.ParsedResumeInput) (*db.ParsedResume, error)
	GetParsedResume(ctx context.Context, id uuid.UUID) (*db.ParsedResume, error)
	ListParsedResumes(ctx context.Context, limit, offset int) ([]db.ParsedResume, error)
	DeleteParsedResume(ctx context.Context, id uuid.UUID) (bool, error)
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	Store          Store // optional; storage endpoints answer 503 without it
	Pipeline       *pipeline.Pipeline
	Renderer       *rendering.Renderer
	RateLimit      *ratelimit.Config // nil uses ratelimit.DefaultConfig
	Logger         zerolog.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          Store
	pipeline       *pipeline.Pipeline
	renderer       *rendering.Renderer
	rateLimiter    *ratelimit.Limiter
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		store:          cfg.Store,
		pipeline:       cfg.Pipeline,
		renderer:       cfg.Renderer,
		validate:       validator.New(),
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         cfg.Logger,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = DefaultMaxUploadBytes
	}
	if s.pipeline == nil {
		s.pipeline = pipeline.New(pipeline.Options{Logger: cfg.Logger})
	}
	if s.renderer == nil {
		s.renderer = rendering.NewRenderer(rendering.WithLogger(cfg.Logger))
	}
	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Parsing
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /parse/stream", s.handleParseStream)
	mux.HandleFunc("POST /parse/text", s.handleParseText)

	// Rendering
	mux.HandleFunc("POST /render", s.handleRender)

	// Stored results
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/export.xlsx", s.handleExportResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering drives a browser
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Bool("storage", s.store != nil).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()
	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Flush keeps streaming responses working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		event := s.logger.Info()
		if status >= http.StatusInternalServerError {
			event = s.logger.Error()
		} else if status >= http.StatusBadRequest {
			event = s.logger.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", status).
			Int("bytes", rec.bytes).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
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

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"storage": s.store != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure writes err with the status HTTPStatus assigns to it
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	}

	var renderErr *rendering.RenderError
	if errors.As(err, &renderErr) {
		s.jsonResponse(w, status, map[string]string{
			"error":  err.Error(),
			"format": string(renderErr.Format),
		})
		return
	}
	s.errorResponse(w, status, err.Error())
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
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn().Str("client", clientID).Int("limit", info.Limit).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
