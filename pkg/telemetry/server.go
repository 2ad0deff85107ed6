package telemetry

import (
	"context"
	stdliberrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes /metrics and /healthz, plus /notifications when a
// stream is attached.
type Server struct {
	addr       string
	metrics    *Metrics
	stream     *NotificationStream
	httpServer *http.Server
	ready      chan struct{}
	listenAddr string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithNotificationStream serves stream at /notifications.
func WithNotificationStream(stream *NotificationStream) ServerOption {
	return func(s *Server) { s.stream = stream }
}

// NewServer builds a metrics server bound to addr.
func NewServer(addr string, metrics *Metrics, opts ...ServerOption) *Server {
	s := &Server{
		addr:    addr,
		metrics: metrics,
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

// Router returns the chi router serving the endpoints.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	if s.stream != nil {
		router.Method(http.MethodGet, "/notifications", s.stream)
	}
	return router
}

// Ready closes once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address after Ready.
func (s *Server) Addr() string {
	return s.listenAddr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listenAddr = ln.Addr().String()
	close(s.ready)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !stdliberrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
