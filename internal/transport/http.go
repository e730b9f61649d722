package transport

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mergington/activities/internal/domain/activity"
)

// LandingPage is where GET / redirects to.
const LandingPage = "/static/index.html"

// ActivityService defines the registry operations served over HTTP.
type ActivityService interface {
	ListActivities(ctx context.Context) (activity.Catalog, error)
	GetActivity(ctx context.Context, name string) (*activity.Activity, error)
	Enroll(ctx context.Context, name, email string) (string, error)
	Remove(ctx context.Context, name, email string) (string, error)
}

// RequestObserver records per-request metrics.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Options configures the optional parts of the router.
type Options struct {
	// StaticDir is served under /static/ when set.
	StaticDir string
	// Metrics is mounted at GET /metrics when set.
	Metrics http.Handler
	// MCP is mounted at /mcp when set.
	MCP      http.Handler
	Observer RequestObserver
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	activities ActivityService
	logger     *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(activities ActivityService, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	if opts.Observer != nil {
		r.Use(MetricsMiddleware(opts.Observer))
	}
	r.Use(middleware.Recoverer)

	srv := &Server{activities: activities, logger: logger}

	r.Get("/", srv.handleRoot)
	r.Get("/health", srv.handleHealth)
	r.Get("/activities", srv.handleList)
	r.Get("/activities/{activityName}", srv.handleGet)
	r.Post("/activities/{activityName}/signup", srv.handleSignup)
	r.Delete("/activities/{activityName}/participants/{email}", srv.handleRemove)

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}
	if opts.StaticDir != "" {
		r.Get(LandingPage, serveLandingPage(opts.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LandingPage, http.StatusTemporaryRedirect)
}

// serveLandingPage serves index.html directly. http.FileServer answers
// /index.html requests with a redirect to the directory instead.
func serveLandingPage(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(filepath.Join(staticDir, "index.html"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.activities.ListActivities(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	act, err := s.activities.GetActivity(r.Context(), pathParam(r, "activityName"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, act)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "activityName")
	email := r.URL.Query().Get("email")

	msg, err := s.activities.Enroll(r.Context(), name, email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "activityName")
	email := pathParam(r, "email")

	msg, err := s.activities.Remove(r.Context(), name, email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeDetail(w, status, detail)
}

// pathParam returns a decoded URL parameter. chi matches against the raw
// path when the request carries escapes such as %2F, leaving them in place.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
