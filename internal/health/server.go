// Package health serves the liveness endpoint and Prometheus metrics.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"uni-assistant/internal/logging"
)

// StatusText is the body of every successful health response.
const StatusText = "✅ UniBot is running!"

const shutdownTimeout = 5 * time.Second

// NewRouter returns the HTTP handler. gatherer may be nil to omit /metrics.
func NewRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	for _, path := range []string{"/", "/health"} {
		r.Get(path, handleStatus)
		r.Head(path, handleStatus)
	}
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(StatusText))
}

// Server runs the health router until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(port string, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(gatherer),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logging.OrNop(logger),
	}
}

// Run listens until ctx is done, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("health server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("health server failed", zap.String("addr", s.srv.Addr), zap.Error(err))
			errCh <- fmt.Errorf("health server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown health server: %w", err)
	}
	return nil
}
