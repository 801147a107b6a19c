// Package server exposes the feedback components over HTTP.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/feedback/internal/config"
	"github.com/vango-dev/feedback/internal/errors"
	"github.com/vango-dev/feedback/pkg/apierror"
	"github.com/vango-dev/feedback/pkg/notify"
	"github.com/vango-dev/feedback/pkg/relay"
)

// maxBodyBytes bounds request bodies on the toast and report endpoints.
const maxBodyBytes = 64 << 10

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Options wires the server to its collaborators.
type Options struct {
	Notifier *notify.Notifier
	Reporter *apierror.Reporter

	// Hub serves the relay WebSocket. Nil disables the endpoint.
	Hub *relay.Hub

	// Metrics serves the metrics endpoint. Nil disables it.
	Metrics http.Handler

	// Tracing configures request spans.
	Tracing TracingConfig

	Paths  config.PathsConfig
	Logger *slog.Logger
}

// Server is the HTTP surface of the feedback components.
type Server struct {
	opts   Options
	logger *slog.Logger
	router chi.Router
}

// New creates a server. Zero Paths fields take the config defaults.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(nil)
	}
	if opts.Reporter == nil {
		opts.Reporter = apierror.New(apierror.SlogSink(opts.Logger), opts.Notifier)
	}
	opts.Paths = withDefaultPaths(opts.Paths)

	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

func withDefaultPaths(p config.PathsConfig) config.PathsConfig {
	def := config.New().Paths
	if p.WebSocket == "" {
		p.WebSocket = def.WebSocket
	}
	if p.Toast == "" {
		p.Toast = def.Toast
	}
	if p.Report == "" {
		p.Report = def.Report
	}
	if p.Metrics == "" {
		p.Metrics = def.Metrics
	}
	return p
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.tracing(s.opts.Tracing))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Post(s.opts.Paths.Toast, s.handleToast)
	r.Post(s.opts.Paths.Report, s.handleReport)

	if s.opts.Hub != nil {
		r.Get(s.opts.Paths.WebSocket, s.opts.Hub.HandleWebSocket)
	}
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, s.opts.Paths.Metrics, s.opts.Metrics)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("feedback server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.FromError(err, "F140")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.opts.Hub != nil {
		s.opts.Hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.FromError(err, "F140")
	}
	s.logger.Info("feedback server stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// writeError writes err as a JSON body with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, err *errors.Error) {
	s.logger.Debug("request rejected", "status", status, "error", err.FormatCompact())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(err.FormatJSON()))
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) *errors.Error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.New("F120").Wrap(err).WithDetail(err.Error())
	}
	return nil
}
