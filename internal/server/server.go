package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Server runs the service's HTTP listener and, optionally, a separate
// listener exposing prometheus metrics.
type Server struct {
	addr            string
	metricsAddr     string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	handler *Handler
	http    *http.Server
	metrics *http.Server

	ln        net.Listener
	metricsLn net.Listener
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// OptServerMetricsAddr serves /metrics on addr. Empty disables it.
func OptServerMetricsAddr(addr string) ServerOption {
	return func(s *Server) {
		s.metricsAddr = addr
	}
}

// OptServerShutdownTimeout bounds how long Serve waits for in-flight
// requests once its context is done.
func OptServerShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// OptServerLogger sets the server's logger.
func OptServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer returns a server for handler bound to addr.
func NewServer(addr string, handler *Handler, opts ...ServerOption) *Server {
	s := &Server{
		addr:            addr,
		shutdownTimeout: 5 * time.Second,
		logger:          slog.Default(),
		handler:         handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler.MetricsHandler())
		s.metrics = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s
}

// Open binds the listeners.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.addr, err)
	}
	s.ln = ln

	if s.metrics != nil {
		mln, err := net.Listen("tcp", s.metricsAddr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("server: listen on %s: %w", s.metricsAddr, err)
		}
		s.metricsLn = mln
	}
	return nil
}

// Addr returns the bound address of the main listener, nil before Open.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// MetricsAddr returns the bound address of the metrics listener, if any.
func (s *Server) MetricsAddr() net.Addr {
	if s.metricsLn == nil {
		return nil
	}
	return s.metricsLn.Addr()
}

// Serve serves requests until ctx is done, then shuts down gracefully.
// Open is called if it has not been already.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Open(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", slog.String("addr", s.ln.Addr().String()))
		return ignoreClosed(s.http.Serve(s.ln))
	})
	if s.metrics != nil {
		g.Go(func() error {
			s.logger.Info("metrics listening", slog.String("addr", s.metricsLn.Addr().String()))
			return ignoreClosed(s.metrics.Serve(s.metricsLn))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})
	return g.Wait()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	err := s.http.Shutdown(ctx)
	if s.metrics != nil {
		err = errors.Join(err, s.metrics.Shutdown(ctx))
	}
	return err
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
