package shared

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Conversly/carteira-api/internal/utils"
	"go.uber.org/zap"
)

// Server wraps the HTTP listener serving the gin engine.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Listen binds the TCP listener.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.http.Addr)
}

// Serve blocks serving ln until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	utils.Zlog.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server, waiting up to the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Run serves ln until ctx is done, then shuts down gracefully. It returns the
// serve error when the server stops on its own.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if err == nil {
			return errors.New("http server stopped unexpectedly")
		}
		return err
	case <-ctx.Done():
		utils.Zlog.Info("Shutdown signal received")
		if err := s.Stop(context.Background()); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return <-serveErr
	}
}
