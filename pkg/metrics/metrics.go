// Package metrics instruments toasters and diagnostic sinks with Prometheus.
//
// Metrics collected:
//   - vango_feedback_toasts_total: Counter of toasts by variant
//   - vango_feedback_errors_reported_total: Counter of reported errors by title
//
// Titles come from callers, so only titles registered with WithTitles get
// their own series; every other title is counted as "other".
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	toaster := metrics.Toaster(hub, metrics.WithRegistry(reg))
//	sink := metrics.Sink(apierror.SlogSink(logger), metrics.WithRegistry(reg))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/feedback/pkg/apierror"
	"github.com/vango-dev/feedback/pkg/toast"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "feedback").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Titles are the report titles counted under their own label value.
	// Default: apierror.DefaultTitle
	Titles []string
}

// Option configures the Prometheus collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTitles adds report titles that get their own label value.
func WithTitles(titles ...string) Option {
	return func(c *Config) {
		c.Titles = append(c.Titles, titles...)
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vango",
		Subsystem: "feedback",
		Registry:  prometheus.DefaultRegisterer,
		Titles:    []string{apierror.DefaultTitle},
	}
}

func newConfig(opts []Option) Config {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

const (
	// variantLabel is the label value used for toasts without a variant.
	variantLabel = "default"

	// otherTitleLabel is the label value for titles outside Config.Titles.
	otherTitleLabel = "other"
)

type toaster struct {
	next  toast.Toaster
	total *prometheus.CounterVec
}

// Toaster wraps next and counts every toast by variant.
// Collectors are registered on the configured registry; registering twice
// on the same registry panics.
func Toaster(next toast.Toaster, opts ...Option) toast.Toaster {
	config := newConfig(opts)
	factory := promauto.With(config.Registry)

	return &toaster{
		next: next,
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_total",
			Help:        "Total number of toasts shown, by variant",
			ConstLabels: config.ConstLabels,
		}, []string{"variant"}),
	}
}

func (m *toaster) Toast(t toast.Toast) {
	variant := string(t.Variant)
	if variant == "" {
		variant = variantLabel
	}
	m.total.WithLabelValues(variant).Inc()
	m.next.Toast(t)
}

type sink struct {
	next   apierror.Sink
	titles map[string]bool
	total  *prometheus.CounterVec
}

// Sink wraps next and counts every diagnostic record by title.
func Sink(next apierror.Sink, opts ...Option) apierror.Sink {
	config := newConfig(opts)
	factory := promauto.With(config.Registry)

	titles := make(map[string]bool, len(config.Titles))
	for _, t := range config.Titles {
		titles[t] = true
	}

	return &sink{
		next:   next,
		titles: titles,
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_reported_total",
			Help:        "Total number of caught errors reported, by title",
			ConstLabels: config.ConstLabels,
		}, []string{"title"}),
	}
}

func (m *sink) Record(label string, value any) {
	title := label
	if !m.titles[title] {
		title = otherTitleLabel
	}
	m.total.WithLabelValues(title).Inc()
	m.next.Record(label, value)
}
