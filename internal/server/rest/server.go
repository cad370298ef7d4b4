// Package rest exposes the user and item endpoints over HTTP.
package rest

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
)

type Server struct {
	address         string
	db              *sql.DB
	resolver        *services.IdentityResolver
	users           *services.UserService
	items           *services.ItemService
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(a string, l logging.Logger, db *sql.DB, r *services.IdentityResolver,
	us *services.UserService, is *services.ItemService, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         a,
		db:              db,
		resolver:        r,
		users:           us,
		items:           is,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /user", s.authenticate(s.createUser))
	mux.Handle("GET /user/{id}", s.authenticate(s.getUser))
	mux.Handle("POST /item", s.authenticate(s.createItem))
	mux.Handle("PATCH /item/{id}", s.authenticate(s.patchItem))

	return requestID(s.accessLog(mux))
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
