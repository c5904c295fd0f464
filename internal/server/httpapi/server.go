// Package httpapi exposes the ledger over HTTP JSON: registration, login,
// account listing, and token-guarded transfer operations.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmsantos/transferd/internal/logging"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/auth"
	"github.com/dmsantos/transferd/internal/server/transfers"
)

type Server struct {
	address   string
	logger    logging.Logger
	accounts  *accounts.Service
	auth      *auth.Service
	transfers *transfers.Service
	metrics   *metrics
}

func NewServer(address string, l logging.Logger, as *accounts.Service, aus *auth.Service, ts *transfers.Service) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		accounts:  as,
		auth:      aus,
		transfers: ts,
		metrics:   newMetrics(),
	}
}

// Handler builds the full route table. Register, login, and the account list
// are public; the transfer routes pass through the token gate.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.HandleFunc("/users/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	protected := r.PathPrefix("/transfers").Subrouter()
	protected.Use(s.tokenGate)
	protected.HandleFunc("", s.handleCreateTransfer).Methods(http.MethodPost)
	protected.HandleFunc("", s.handleListTransfers).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
