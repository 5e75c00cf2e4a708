// internal/server/server.go

// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pmis-recommender/internal/catalog"
	"pmis-recommender/internal/common/config"
	stderrors "pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/common/logger"
	"pmis-recommender/internal/common/observability"
	"pmis-recommender/internal/engine/ranker"
	"pmis-recommender/internal/registry"
)

// Server wires the HTTP routes to the scoring pipeline.
type Server struct {
	config   *config.Config
	logger   logger.Logger
	students catalog.StudentStore
	listings catalog.InternshipStore
	ranker   *ranker.Ranker
	registry *registry.Registry
	signals  *catalog.PairSignalCache
	errors   *stderrors.ErrorHandler
	obs      *observability.Observability

	router *mux.Router
	http   *http.Server
}

// Deps carries everything the server needs; all fields are required except
// Signals, which may be nil to disable pair-signal caching.
type Deps struct {
	Students catalog.StudentStore
	Listings catalog.InternshipStore
	Ranker   *ranker.Ranker
	Registry *registry.Registry
	Signals  *catalog.PairSignalCache
	Obs      *observability.Observability
}

func New(cfg *config.Config, log logger.Logger, deps Deps) *Server {
	s := &Server{
		config:   cfg,
		logger:   log,
		students: deps.Students,
		listings: deps.Listings,
		ranker:   deps.Ranker,
		registry: deps.Registry,
		signals:  deps.Signals,
		errors:   stderrors.NewErrorHandler(log),
		obs:      deps.Obs,
		router:   mux.NewRouter(),
	}
	s.routes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/recommendations/{student_id}", s.handleRecommendations).Methods(http.MethodGet)
	s.router.HandleFunc("/success/{student_id}/{internship_id}", s.handlePairPrediction).Methods(http.MethodGet)
	s.router.HandleFunc("/students", s.handleListStudents).Methods(http.MethodGet)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router.HandleFunc("/debug/pprof/", pprof.Index)
	s.router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.http.Addr,
	})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
