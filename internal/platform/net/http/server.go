package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"streaks/internal/platform/config"
	"streaks/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listener lifecycle
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads API_PORT, SHUTDOWN_GRACE, WRITE_TIMEOUT and IDLE_TIMEOUT from cfg
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux:   m,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayAddr("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 120*time.Second),
		},
	}
}

// Router is the mount surface, middleware must be added before any route
func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.srv.Addr }

// Run listens on Addr and serves until ctx is done, see Serve
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves ln until ctx is done or the server fails
// a done ctx drains in flight requests for up to the grace period, a clean stop returns nil
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		return closedIsNil(err)
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	return closedIsNil(<-errc)
}

// Shutdown stops a server started by Run or Serve from outside its ctx
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func closedIsNil(err error) error {
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}
