package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/record"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// Engine defines the operations served over HTTP.
type Engine interface {
	Tokenize(line string) []string
	Classify(raw string) quill.Classification
	Describe(r *record.Record) quill.Description
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine  Engine
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.logRequests)

	r.Get("/health", server.GetHealth)
	r.Post("/tokenize", server.Tokenize)
	r.Post("/classify", server.Classify)
	r.Post("/describe", server.Describe)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// TokenizeRequest is the body of POST /tokenize.
type TokenizeRequest struct {
	Line *string `json:"line"`
}

// TokenizeResponse lists the tokens of the line. Tokens is null when line was absent.
type TokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Values []string `json:"values"`
}

// ClassifyResponse holds one classification per value, in order.
type ClassifyResponse struct {
	Results []quill.Classification `json:"results"`
}

// DescribeResponse holds one description per record, in order.
type DescribeResponse struct {
	Results []quill.Description `json:"results"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// Tokenize handles POST /tokenize.
func (s *Server) Tokenize(w http.ResponseWriter, r *http.Request) {
	var body TokenizeRequest
	if !s.decode(w, r, &body) {
		return
	}

	resp := TokenizeResponse{}
	if body.Line != nil {
		resp.Tokens = s.Engine.Tokenize(*body.Line)
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

// Classify handles POST /classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var body ClassifyRequest
	if !s.decode(w, r, &body) {
		return
	}

	resp := ClassifyResponse{Results: make([]quill.Classification, 0, len(body.Values))}
	for _, v := range body.Values {
		resp.Results = append(resp.Results, s.Engine.Classify(v))
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

// Describe handles POST /describe. The body is one record or a list of records.
func (s *Server) Describe(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.badRequest(w, "Describe", err)
		return
	}
	records, err := record.Parse(data)
	if err != nil {
		s.badRequest(w, "Describe", err)
		return
	}

	resp := DescribeResponse{Results: make([]quill.Description, 0, len(records))}
	for _, rec := range records {
		resp.Results = append(resp.Results, s.Engine.Describe(rec))
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.badRequest(w, r.URL.Path, err)
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.Logger.Warn("invalid request body", "op", op, "error", err)
	msg := "Invalid request body"
	var syntax *json.SyntaxError
	if !errors.As(err, &syntax) {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg}, s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
