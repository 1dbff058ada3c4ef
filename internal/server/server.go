// Package server runs the HTTP listener under the lifecycle coordinator.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/pkg/lifecycle"
)

// System is the HTTP listener.
type System interface {
	// Start binds synchronously so bind errors surface to the caller, then
	// serves in the background until lc shuts down.
	Start(lc *lifecycle.Coordinator) error
	// Addr is the bound address once started, the configured one before.
	Addr() string
}

type server struct {
	srv    *http.Server
	ln     net.Listener
	grace  time.Duration
	logger *slog.Logger
}

func New(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) System {
	return &server{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		grace:  cfg.ShutdownTimeoutDuration(),
		logger: logger.With("system", "server"),
	}
}

func (s *server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.srv.Addr
}

func (s *server) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.ln = ln

	go s.serve()
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.stop()
	})
	return nil
}

func (s *server) serve() {
	s.logger.Info("listening", "addr", s.Addr())
	err := s.srv.Serve(s.ln)
	if !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("serve failed", "error", err)
	}
}

func (s *server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
		return
	}
	s.logger.Info("listener closed")
}
