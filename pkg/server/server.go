/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/openbatch/batchadmit/pkg/verifier"
)

// Server is the admission HTTP server. Construct with New and run with
// Run; Run blocks until the context is canceled or a termination signal
// arrives.
type Server struct {
	name    string
	version string
	cfg     *Config

	registry *verifier.Registry
	limiter  *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithName sets the service name reported on the default route.
func WithName(name string) ServerOption {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the service version reported on the default route.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithConfig overrides the server configuration.
func WithConfig(cfg *Config) ServerOption {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithRegistry sets the verification registry backing /v1/verify.
func WithRegistry(r *verifier.Registry) ServerOption {
	return func(s *Server) {
		s.registry = r
	}
}

// New creates a Server. A registry is required before Run; when none is
// supplied one is built with package defaults.
func New(opts ...ServerOption) *Server {
	s := &Server{
		name:    "batchadmit",
		version: "dev",
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateLimitBurst)
	return s
}

// setReady flips the readiness state reported by /ready.
func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// Run starts the server and blocks until shutdown completes. SIGINT and
// SIGTERM trigger a graceful shutdown bounded by ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	if s.registry == nil {
		r, err := verifier.New()
		if err != nil {
			return fmt.Errorf("building verification registry: %w", err)
		}
		s.registry = r
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()
	s.setReady(true)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.setReady(false)
	slog.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
