package export

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the persisted drawing over HTTP for download.
type Server struct {
	store storage.Store
	srv   *http.Server
}

// NewServer creates a server bound to addr. It reads only from store.
func NewServer(addr string, store storage.Store) *Server {
	s := &Server{store: store}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/drawing.png", s.handleDrawing)
	return r
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request) {
	data, err := FromStore(s.store)
	if errors.Is(err, ErrNoDrawing) {
		http.Error(w, "no drawing yet", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Errorf("Export server: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="doodle.png"`)
	}
	w.Write(data)
}

// Start listens in a background goroutine. Listen errors are logged.
func (s *Server) Start() {
	go func() {
		logger.Infof("Export server: listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Export server: %v", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
