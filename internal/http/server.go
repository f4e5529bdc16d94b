package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coursedesk/internal/auth"
	"coursedesk/internal/config"
	"coursedesk/internal/crypto"
	"coursedesk/internal/logger"
	"coursedesk/internal/repository"
)

type Server struct {
	cfg   *config.Config
	store *repository.Store
	log   *logger.Logger
}

func NewServer(cfg *config.Config, store *repository.Store, log *logger.Logger) *Server {
	return &Server{cfg: cfg, store: store, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/admin/login", s.handleAdminLogin)

	r.Route("/students", func(r chi.Router) {
		r.Get("/", s.handleGetStudents)
		r.With(s.requireAdmin).Post("/", s.handlePostStudents)
		r.With(s.requireAdmin).Put("/", s.handleUpdateStudent)
		r.With(s.requireAdmin).Delete("/", s.handleDeleteStudent)
	})

	r.Route("/assignments", func(r chi.Router) {
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", s.handleGetAssignmentComments)
			r.Post("/", s.handleCreateAssignmentComment)
			r.With(s.requireAdmin).Delete("/", s.handleDeleteAssignmentComment)
		})
		r.Get("/", s.handleGetAssignments)
		r.With(s.requireAdmin).Post("/", s.handleCreateAssignment)
		r.With(s.requireAdmin).Put("/", s.handleUpdateAssignment)
		r.With(s.requireAdmin).Delete("/", s.handleDeleteAssignment)
	})

	r.Route("/weeks", func(r chi.Router) {
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", s.handleGetWeekComments)
			r.Post("/", s.handleCreateWeekComment)
			r.With(s.requireAdmin).Delete("/", s.handleDeleteWeekComment)
		})
		r.Get("/", s.handleGetWeeks)
		r.With(s.requireAdmin).Post("/", s.handleCreateWeek)
		r.With(s.requireAdmin).Put("/", s.handleUpdateWeek)
		r.With(s.requireAdmin).Delete("/", s.handleDeleteWeek)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", s.handleGetResources)
		r.With(s.requireAdmin).Post("/", s.handleCreateResource)
		r.With(s.requireAdmin).Put("/", s.handleUpdateResource)
		r.With(s.requireAdmin).Delete("/", s.handleDeleteResource)
	})

	return r
}

// corsMiddleware answers the headers the browser pages expect and
// short-circuits preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates mutating endpoints behind the admin token. The gate is
// open when no admin password hash is configured.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminPasswordHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Missing admin token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, token)
		if err != nil || !claims.Admin {
			writeError(w, http.StatusUnauthorized, "Invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AdminPasswordHash == "" {
		writeError(w, http.StatusUnauthorized, "Admin login is not configured")
		return
	}

	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := crypto.CheckPassword(s.cfg.AdminPasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := auth.NewAdminToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.TokenTTL)
	if err != nil {
		s.log.Errorf("admin token: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}
