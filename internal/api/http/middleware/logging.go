package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
)

// Logging logs HTTP requests and records their latency.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		l.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"status", sw.status)

		if sw.status >= http.StatusInternalServerError {
			l.logger.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status)
		}
	})
}
