package preview

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ducroq/sanderveen.art/internal/manifest"
)

// Server exposes a crawl result read-only over HTTP so the manifest
// and downloaded images can be inspected before the site build runs.
type Server struct {
	manifestPath string
	imageDir     string
	logger       *slog.Logger
}

func NewServer(manifestPath, imageDir string, logger *slog.Logger) *Server {
	return &Server{
		manifestPath: manifestPath,
		imageDir:     imageDir,
		logger:       logger.With("component", "preview"),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/manifest", s.handleManifest)
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.imageDir))))

	return r
}

// requestID tags every response with a fresh id so access log lines
// and client reports can be correlated.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	paintings, err := manifest.Read(s.manifestPath)
	if err != nil {
		if errors.Is(err, manifest.ErrManifestMissing) {
			s.respondJSON(w, http.StatusNotFound, map[string]string{
				"error": "no manifest yet, run the scrape first",
			})
			return
		}
		s.logger.Error("failed to read manifest", "error", err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read manifest"})
		return
	}

	s.respondJSON(w, http.StatusOK, paintings)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
