// Package httpserver exposes the moviedesk REST API.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/avelines/moviedesk/internal/service"
	"github.com/avelines/moviedesk/internal/session"
	"github.com/avelines/moviedesk/internal/token"
	"go.uber.org/zap"
)

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	movies   service.MovieService
	users    service.UserService
	sessions *session.Store
	issuer   *token.Issuer
	db       Pinger
	log      *zap.Logger

	cookieName string
	cookieTTL  time.Duration
}

// Config collects the server's dependencies.
type Config struct {
	Auth       service.AuthService
	Movies     service.MovieService
	Users      service.UserService
	Sessions   *session.Store
	Issuer     *token.Issuer
	DB         Pinger
	Log        *zap.Logger
	CookieName string
	CookieTTL  time.Duration
}

// New constructs a Server with injected services.
func New(cfg Config) *Server {
	return &Server{
		auth:       cfg.Auth,
		movies:     cfg.Movies,
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		issuer:     cfg.Issuer,
		db:         cfg.DB,
		log:        cfg.Log,
		cookieName: cfg.CookieName,
		cookieTTL:  cfg.CookieTTL,
	}
}

// Handler builds the route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// auth
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/login", s.handleSessionCheck)
	mux.HandleFunc("GET /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/isUserAuth", s.requireAuth(s.handleIsUserAuth))

	// movies
	mux.HandleFunc("GET /api/movies", s.handleListMovies)
	mux.HandleFunc("POST /api/movies", s.handleCreateMovie)
	mux.HandleFunc("GET /api/movies/{id}", s.handleGetMovie)
	mux.HandleFunc("PUT /api/movies/{id}", s.handleUpdateMovie)
	mux.HandleFunc("DELETE /api/movies/{id}", s.handleDeleteMovie)

	// users
	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/users/{id}", s.handleGetUser)
	mux.HandleFunc("PUT /api/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", s.handleDeleteUser)

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	var h http.Handler = mux
	h = Logging(s.log)(h)
	h = Recover(s.log)(h)
	return h
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.log.Error("health check", zap.Error(err))
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
