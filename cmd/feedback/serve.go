package main

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/vango-dev/feedback/internal/config"
	"github.com/vango-dev/feedback/internal/errors"
	"github.com/vango-dev/feedback/internal/server"
	"github.com/vango-dev/feedback/pkg/apierror"
	"github.com/vango-dev/feedback/pkg/metrics"
	"github.com/vango-dev/feedback/pkg/notify"
	"github.com/vango-dev/feedback/pkg/relay"
	"github.com/vango-dev/feedback/pkg/toast"
)

type serveOptions struct {
	configPath string
	host       string
	port       int
	sentryDSN  string
	noMetrics  bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the feedback server",
		Long: `Run the feedback server.

Configuration is read from --config, or from feedback.json in the working
directory when present. Flags override file values.`,
		Example: `  feedback serve
  feedback serve --port 8080
  feedback serve --config /etc/feedback.json --sentry-dsn https://key@sentry.example/1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to feedback.json")
	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to bind")
	cmd.Flags().StringVar(&opts.sentryDSN, "sentry-dsn", "", "Sentry DSN for reported errors (env "+config.EnvSentryDSN+")")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "Disable the Prometheus endpoint")

	return cmd
}

// loadConfig resolves the configuration from file, flags and environment.
func loadConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.configPath != "":
		cfg, err = config.LoadFile(opts.configPath)
	default:
		cfg, err = config.Load(".")
		var fe *errors.Error
		if stderrors.As(err, &fe) && fe.Code == "F101" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("sentry-dsn") {
		cfg.Sentry.DSN = opts.sentryDSN
	}
	if opts.noMetrics {
		cfg.Metrics.Enabled = false
	}
	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// components are the wired feedback pieces the server runs with.
type components struct {
	hub      *relay.Hub
	notifier *notify.Notifier
	reporter *apierror.Reporter
	metrics  http.Handler
}

func wire(cfg *config.Config, logger *slog.Logger) (*components, error) {
	hub := relay.NewHub(relay.AllowOrigins(cfg.Server.AllowedOrigins), logger)

	var (
		toaster toast.Toaster = hub
		sink    apierror.Sink = apierror.SlogSink(logger)
		handler http.Handler
	)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Debug:       cfg.Sentry.Debug,
			Release:     version,
		}); err != nil {
			return nil, errors.New("F141").Wrap(err).WithDetail(err.Error())
		}
		sink = apierror.MultiSink(sink, apierror.SentrySink(nil))
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		toaster = metrics.Toaster(toaster, metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))
		sink = metrics.Sink(sink,
			metrics.WithRegistry(reg),
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithTitles(cfg.Metrics.Titles...),
		)
		handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	n := notify.New(toaster)
	return &components{
		hub:      hub,
		notifier: n,
		reporter: apierror.New(sink, n),
		metrics:  handler,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config, logOut io.Writer) error {
	logger := newLogger(cfg, logOut)
	slog.SetDefault(logger)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	c, err := wire(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Sentry.DSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	srv := server.New(server.Options{
		Notifier: c.notifier,
		Reporter: c.reporter,
		Hub:      c.hub,
		Metrics:  c.metrics,
		Paths:    cfg.Paths,
		Logger:   logger,
	})
	return srv.Run(ctx, cfg.Address())
}
