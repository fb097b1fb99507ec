package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-dashboard/internal/dashboard"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/internal/version"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata"
	"go.uber.org/zap"
)

const (
	defaultLookbackDays = 30
	requestIDHeader     = "X-Request-ID"
	clientVersionHeader = "X-Client-Version"
)

// Invalidator is implemented by pipelines that can drop memoised results.
type Invalidator interface {
	Invalidate()
}

// Options configures a Server.
type Options struct {
	Addr     string
	Asset    types.Asset
	Location *time.Location
	Logger   *logger.Logger
	// Now picks the default analysis date. It should be the clock the pipeline uses.
	Now func() time.Time
}

// Server exposes the dashboard pipeline as a JSON API.
type Server struct {
	pipeline   dashboard.Pipeline
	options    Options
	router     *mux.Router
	httpServer *http.Server
	logger     *logger.Logger
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Code      errors.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	RequestID string           `json:"requestId,omitempty"`
}

// NewServer creates a new API server.
func NewServer(pipeline dashboard.Pipeline, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		pipeline: pipeline,
		options:  opts,
		logger:   opts.Logger.Named("api"),
	}

	s.setupRoutes()

	return s
}

// Handler returns the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.versionMiddleware)

	apiV1 := s.router.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	apiV1.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	apiV1.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)
	apiV1.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	apiV1.HandleFunc("/analysis", s.handleAnalysis).Methods(http.MethodGet)
	apiV1.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
}

// Start listens until the server is shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.options.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting API server", zap.String("addr", s.options.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, version.GetInfo())
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, marketdata.Providers())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	assetID := query.Get("asset")
	if assetID == "" {
		assetID = s.options.Asset.ID
	}

	days := defaultLookbackDays

	if raw := query.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, errors.Wrapf(errors.ErrCodeInvalidInput, err, "days must be an integer, got %q", raw))

			return
		}

		days = parsed
	}

	result, err := s.pipeline.GetDashboard(r.Context(), assetID, days)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	date := s.options.Now().In(s.options.Location)

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, s.options.Location)
		if err != nil {
			s.writeError(w, r, errors.Wrapf(errors.ErrCodeInvalidInput, err, "date must be YYYY-MM-DD, got %q", raw))

			return
		}

		date = parsed
	}

	result, err := s.pipeline.GetTechnicalAnalysis(r.Context(), date)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	if invalidator, ok := s.pipeline.(Invalidator); ok {
		invalidator.Invalidate()
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	message := err.Error()

	var structured *errors.Error
	if errors.As(err, &structured) {
		message = structured.Message
	}

	s.writeJSON(w, status, errorResponse{
		Code:      errors.GetCode(err),
		Message:   message,
		RequestID: w.Header().Get(requestIDHeader),
	})
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidVersion:
		return http.StatusBadRequest
	case errors.ErrCodeNoDataFound:
		return http.StatusNotFound
	case errors.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
