package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the tracer used when TracingConfig.Tracer is nil.
const defaultTracerName = "vango/feedback"

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// Tracer starts request spans. Nil resolves a tracer named
	// defaultTracerName from the global provider.
	Tracer trace.Tracer

	// Propagator extracts the caller's trace context from request headers.
	// Nil means otel.GetTextMapPropagator().
	Propagator propagation.TextMapPropagator

	// Filter determines which requests to trace.
	// Return true to trace the request. Nil traces everything except the
	// health, metrics and WebSocket endpoints.
	Filter func(r *http.Request) bool
}

// tracing creates middleware that starts a server span per request, so the
// reporter can mark it failed. The caller's trace context is continued.
func (s *Server) tracing(config TracingConfig) func(http.Handler) http.Handler {
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(defaultTracerName)
	}
	filter := config.Filter
	if filter == nil {
		filter = s.defaultTraceFilter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			propagator := config.Propagator
			if propagator == nil {
				propagator = otel.GetTextMapPropagator()
			}
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
					attribute.String("http.request_id", middleware.GetReqID(r.Context())),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rctx := chi.RouteContext(ctx); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					span.SetName(fmt.Sprintf("HTTP %s %s", r.Method, pattern))
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}
			span.SetAttributes(attribute.Int("http.status_code", ww.Status()))
			if ww.Status() >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(ww.Status()))
			}
		})
	}
}

func (s *Server) defaultTraceFilter(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", s.opts.Paths.Metrics, s.opts.Paths.WebSocket:
		return false
	default:
		return true
	}
}
