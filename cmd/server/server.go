package main

import (
	"time"

	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/infrastructure"
	"github.com/JaimeStill/paginalab/internal/server"
)

// Server owns the shared infrastructure and the HTTP listener built on it.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	router, err := buildRouter(cfg, infra)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		infra: infra,
		http:  server.New(&cfg.Server, router, infra.Logger),
	}

	infra.Logger.Info("paginalab configured",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"driver", cfg.Database.Driver,
	)
	return srv, nil
}

// Start connects the infrastructure, then binds the listener. Readiness is
// logged once every startup hook has finished.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	lc := s.infra.Lifecycle
	go func() {
		lc.WaitForStartup()
		s.infra.Logger.Info("paginalab ready", "addr", s.http.Addr())
	}()
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("stopping paginalab", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
