// Package web provides the JSON API server for campus explorer.
package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evcraddock/campus-explorer/internal/clock"
	"github.com/evcraddock/campus-explorer/internal/landmark"
	"github.com/evcraddock/campus-explorer/internal/logging"
	"github.com/evcraddock/campus-explorer/internal/metrics"
	"github.com/evcraddock/campus-explorer/internal/progress"
	"github.com/evcraddock/campus-explorer/internal/user"
	"github.com/evcraddock/campus-explorer/internal/visit"
)

// Server is the API HTTP server.
type Server struct {
	landmarks *landmark.Repository
	users     *user.Store
	visits    *visit.Service
	progress  *progress.Service
	router    chi.Router
}

// NewServer wires the stores and services over db. Calendar days are
// computed in loc.
func NewServer(db *sql.DB, clk clock.Clock, loc *time.Location) *Server {
	landmarks := landmark.NewRepository(db)
	users := user.NewStore(db)

	visits := visit.NewService(visit.NewRepository(db), users, landmarks, clk)
	visits.Subscribe(metrics.RecordVisitEvent)

	s := &Server{
		landmarks: landmarks,
		users:     users,
		visits:    visits,
		progress:  progress.NewService(users, landmarks, clk, loc),
	}
	s.router = s.routes()
	return s
}

// Visits exposes the check-in service so callers can subscribe to events.
func (s *Server) Visits() *visit.Service {
	return s.visits
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/landmarks", func(r chi.Router) {
			r.Get("/", s.apiListLandmarks)
			r.Post("/", s.apiAddLandmark)
			r.Get("/{name}", s.apiGetLandmark)
			r.Delete("/{name}", s.apiDeleteLandmark)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.apiListUsers)
			r.Post("/", s.apiAddUser)

			r.Route("/{username}", func(r chi.Router) {
				r.Get("/", s.apiGetUser)
				r.Delete("/", s.apiDeleteUser)

				r.Get("/visits", s.apiListVisits)
				r.Post("/visits", s.apiCheckIn)
				r.Delete("/visits/{id}", s.apiUndoVisit)

				r.Get("/progress", s.apiProgress)
				r.Get("/summary", s.apiSummary)
			})
		})
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
