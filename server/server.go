// Package server exposes the pizza service over HTTP. Every mutating
// endpoint follows the same guard protocol: resolve the caller's session,
// fetch the ownership facts the decision needs, then ask the authorization
// policy before touching the resource.
package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/franchise"
	"github.com/jwtpizza/pizza-service/internal/config"
	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/order"
	"github.com/jwtpizza/pizza-service/session"
	"github.com/jwtpizza/pizza-service/users"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users      users.Repo
	Franchises franchise.Repo
	Orders     order.Repo
}

type Server struct {
	config   *config.Config
	repos    Repos
	sessions *session.Service
	factory  order.Factory
	metrics  *metrics.Collector
	logger   zerolog.Logger
	mux      *http.ServeMux
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables metrics collection for handled requests
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = collector
	}
}

// New initializes the Server with required dependencies.
func New(cfg *config.Config, repos Repos, sessions *session.Service, factory order.Factory, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[server.New] config is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[server.New] Users repo is required")
	}
	if repos.Franchises == nil {
		return nil, errors.New("[server.New] Franchises repo is required")
	}
	if repos.Orders == nil {
		return nil, errors.New("[server.New] Orders repo is required")
	}
	if sessions == nil {
		return nil, errors.New("[server.New] session service is required")
	}
	if factory == nil {
		return nil, errors.New("[server.New] factory is required")
	}

	s := &Server{
		config:   cfg,
		repos:    repos,
		sessions: sessions,
		factory:  factory,
		logger:   zerolog.Nop(),
		mux:      http.NewServeMux(),
	}

	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
