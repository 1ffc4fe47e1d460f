package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SyncTrigger starts an out-of-schedule forecast sync.
type SyncTrigger interface {
	TriggerSync() error
}

// Server exposes health, readiness, metrics, and manual sync endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, and /metrics
// routes, plus POST /sync when trigger is non-nil.
func NewServer(addr string, ready sharedobs.ReadinessChecker, trigger SyncTrigger, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	if trigger != nil {
		mux.HandleFunc("POST /sync", s.handleSync(trigger))
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleSync answers 202 as soon as the run is queued; progress shows up in
// logs and metrics.
func (s *Server) handleSync(trigger SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if err := trigger.TriggerSync(); err != nil {
			s.logger.Error("manual sync trigger failed", "error", err)
			sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		s.logger.Info("manual sync triggered")
		sharedobs.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "sync triggered"})
	}
}
