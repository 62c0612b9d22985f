// Package api exposes the HTTP interface for the intake service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MaxiCo1/fwg-api-test/internal/intake"
	"github.com/MaxiCo1/fwg-api-test/internal/origin"
	"github.com/MaxiCo1/fwg-api-test/internal/telemetry"
)

// maxBodyBytes caps the request body; the apply form never comes close.
const maxBodyBytes = 10 << 20

var knownRoutes = []string{"/submit", "/health", "/cors-test", "/metrics"}

// Server wires HTTP handlers to the submission pipeline.
type Server struct {
	router   chi.Router
	pipeline *intake.Pipeline
	log      *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(pipeline *intake.Pipeline, policy *origin.Policy, log *zap.Logger) *Server {
	s := &Server{
		pipeline: pipeline,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(telemetry.Middleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoverMiddleware(log))
	r.Use(corsMiddleware(policy, log))

	r.Post("/submit", s.submit)
	r.Get("/health", s.health)
	r.Get("/cors-test", s.corsTest)
	r.Get("/metrics", telemetry.Handler().ServeHTTP)
	r.NotFound(s.notFound)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub intake.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, intake.ErrorBody{Error: "invalid JSON payload"})
		return
	}

	result := s.pipeline.Process(r.Context(), sub)
	writeJSON(w, result.Status, result.Body)
}

type healthBody struct {
	Status      string `json:"status"`
	Sheets      string `json:"sheets"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// health reports store connectivity. Always 200: the service itself is up,
// and the sheets field carries the downstream state.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	sheets := "DISCONNECTED"
	if s.pipeline.Health(r.Context()) {
		sheets = "CONNECTED"
	}
	writeJSON(w, http.StatusOK, healthBody{
		Status:      "OK",
		Sheets:      sheets,
		Environment: s.pipeline.Environment(),
		Timestamp:   s.pipeline.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) corsTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "CORS test successful",
		"origin":    r.Header.Get("Origin"),
		"timestamp": s.pipeline.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success":        false,
		"error":          "route not found",
		"allowed_routes": knownRoutes,
	})
}

// corsMiddleware applies the origin policy. Preflights are always answered
// with 200 and no body; a rejected origin, preflight or not, also terminates
// with 200 but without the allow-origin header — per browser CORS semantics
// the rejection lives in the header absence, never in the status code.
func corsMiddleware(policy *origin.Policy, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqOrigin := r.Header.Get("Origin")
			decision := policy.Decide(reqOrigin)

			log.Info("origin decision",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("origin", reqOrigin),
				zap.Bool("allowed", decision.Allowed),
			)
			if decision.Exception {
				log.Warn("allowing non-listed origin in development", zap.String("origin", reqOrigin))
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if decision.Echo != "" {
				w.Header().Set("Access-Control-Allow-Origin", decision.Echo)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				log.Info("handling preflight", zap.String("origin", reqOrigin))
				w.WriteHeader(http.StatusOK)
				return
			}
			if !decision.Allowed {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type requestIDKey struct{}

func loggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			log.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("origin", r.Header.Get("Origin")),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered", zap.Any("error", rec))
					writeJSON(w, http.StatusInternalServerError, intake.ErrorBody{Error: "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}
