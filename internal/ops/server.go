package ops

import (
	"context"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports backend liveness. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server serves /healthz and /metrics on its own listener.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the ops HTTP server. An empty listen address disables it.
func NewServer(listen string, collector *Collector, db Pinger) *Server {
	if listen == "" {
		return nil
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if collector != nil {
		r.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              listen,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in the background. Errors other than a clean close
// are logged, not fatal to the bot.
func (s *Server) Start() {
	if s == nil {
		return
	}
	go func() {
		logger.L.Info("ops server listening",
			slog.String("component", "ops"),
			slog.String("addr", s.httpServer.Addr),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("ops server failed",
				slog.String("component", "ops"),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Stop shuts the server down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
