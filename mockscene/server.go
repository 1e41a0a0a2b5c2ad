package mockscene

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/lokanhome/lokan-go/config"
	"github.com/lokanhome/lokan-go/logger"
)

const shutdownTimeout = 5 * time.Second

// ServerTLSConfig builds a server TLS configuration that requires client
// certificates signed by the CA in caFile.
func ServerTLSConfig(certFile, keyFile, caFile string) (*tls.Config, error) {
	return (&config.MockConfig{ServerCert: certFile, ServerKey: keyFile, CACert: caFile}).TLS().BuildServer()
}

// Server serves a Handler over mutual TLS.
type Server struct {
	httpServer *http.Server
	handler    *Handler
	listener   net.Listener
	log        *logger.Logger
}

// NewServer creates a Server for cfg. TLS material is loaded here, so missing
// or invalid files fail early.
func NewServer(cfg *config.MockConfig, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	tlsCfg, err := cfg.TLS().BuildServer()
	if err != nil {
		return nil, fmt.Errorf("mockscene: %w", err)
	}

	handler := NewHandler(Options{Prefix: cfg.Prefix, Logger: log})
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Bind,
			Handler:           handler,
			TLSConfig:         tlsCfg,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		handler: handler,
		log:     log.WithComponent("mockscene-server"),
	}, nil
}

// Handler returns the served handler.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Start binds the address and serves in a goroutine. It returns once the
// listener is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("mockscene: failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	go func() {
		if err := s.httpServer.ServeTLS(ln, "", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("mock scene service listening", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Stop shuts the server down, waiting up to five seconds for open requests.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mockscene: shutdown: %w", err)
	}
	s.log.Info("mock scene service stopped")
	return nil
}

// Run serves the mock service until ctx is cancelled.
func Run(ctx context.Context, cfg *config.MockConfig, log *logger.Logger) error {
	srv, err := NewServer(cfg, log)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop(context.WithoutCancel(ctx))
}
