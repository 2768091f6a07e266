// Package api serves boards over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /boards
//	GET    /boards/{board}
//	PUT    /boards/{board}
//	DELETE /boards/{board}
//	GET    /boards/{board}/check
//	POST   /boards/{board}/blocks
//	PATCH  /boards/{board}/blocks/{id}
//	POST   /boards/{board}/blocks/{id}/move
//	DELETE /boards/{board}/blocks/{id}
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code. Every mutation goes through one
// [editor.Runner], which serializes load, commit and save.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sectiongrid/pkg/editor"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server is the HTTP front end of a Runner.
type Server struct {
	runner *editor.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server over r. A nil logger uses the runner's logger.
func New(r *editor.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = r.Logger
	}
	s := &Server{runner: r, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Put("/", s.handlePutBoard)
			r.Delete("/", s.handleDeleteBoard)
			r.Get("/check", s.handleCheck)
			r.Post("/blocks", s.handleCreateBlock)
			r.Patch("/blocks/{id}", s.handleEditBlock)
			r.Post("/blocks/{id}/move", s.handleMoveBlock)
			r.Delete("/blocks/{id}", s.handleRemoveBlock)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
