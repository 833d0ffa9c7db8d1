package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave/reconcile"
)

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func WithReconciler(r *reconcile.Reconciler) Option {
	return func(s *Server) {
		s.reconciler = r
	}
}

func WithResultTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.store = NewStore(ttl)
	}
}

// WithAgents names the registered agents for the status endpoint.
func WithAgents(names ...string) Option {
	return func(s *Server) {
		s.agents = names
	}
}

// WithTools names the registered tools for the status endpoint.
func WithTools(names ...string) Option {
	return func(s *Server) {
		s.tools = names
	}
}
