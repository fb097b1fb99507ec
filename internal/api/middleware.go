package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-dashboard/internal/version"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"go.uber.org/zap"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestIDMiddleware echoes an incoming X-Request-ID or assigns a new one.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.logger.Info("Handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", w.Header().Get(requestIDHeader)),
		)
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Error("Recovered from panic", zap.Any("panic", recovered), zap.String("path", r.URL.Path))
				s.writeError(w, r, errors.New(errors.ErrCodeUnknown, "internal error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// versionMiddleware rejects clients that declare an incompatible X-Client-Version.
func (s *Server) versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if clientVersion := r.Header.Get(clientVersionHeader); clientVersion != "" {
			if err := version.CheckClientCompatibility(version.GetVersion(), clientVersion); err != nil {
				s.writeError(w, r, err)

				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
