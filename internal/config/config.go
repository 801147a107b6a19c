package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/feedback/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "feedback.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// EnvSentryDSN fills Sentry.DSN when the file leaves it empty.
	EnvSentryDSN = "FEEDBACK_SENTRY_DSN"
)

// Config represents the complete feedback.json configuration.
type Config struct {
	// Server contains listener configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Paths contains the HTTP endpoint paths.
	Paths PathsConfig `json:"paths,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Sentry contains error tracking configuration.
	Sentry SentryConfig `json:"sentry,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains listener configuration.
type ServerConfig struct {
	// Host is the interface to bind.
	Host string `json:"host,omitempty"`

	// Port is the TCP port to bind.
	Port int `json:"port,omitempty"`

	// AllowedOrigins lists origins allowed to open the relay WebSocket.
	// Empty means same-origin only; "*" allows any origin.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// PathsConfig contains the HTTP endpoint paths.
type PathsConfig struct {
	WebSocket string `json:"websocket,omitempty"`
	Toast     string `json:"toast,omitempty"`
	Report    string `json:"report,omitempty"`
	Metrics   string `json:"metrics,omitempty"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint and instruments toasts.
	Enabled bool `json:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`

	// Titles are report titles counted under their own label; all other
	// titles are counted as "other".
	Titles []string `json:"titles,omitempty"`
}

// SentryConfig contains error tracking configuration.
type SentryConfig struct {
	// DSN enables the Sentry sink when set.
	DSN string `json:"dsn,omitempty"`

	// Environment is reported with every event.
	Environment string `json:"environment,omitempty"`

	// Debug turns on Sentry SDK debug logging.
	Debug bool `json:"debug,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New returns a configuration with all defaults applied.
func New() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for feedback.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("F101").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create the file or omit --config to use defaults")
		}
		return nil, errors.New("F100").Wrap(err)
	}

	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("F100").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Paths.WebSocket == "" {
		c.Paths.WebSocket = "/ws"
	}
	if c.Paths.Toast == "" {
		c.Paths.Toast = "/toast"
	}
	if c.Paths.Report == "" {
		c.Paths.Report = "/report"
	}
	if c.Paths.Metrics == "" {
		c.Paths.Metrics = "/metrics"
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "vango"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv fills empty fields from the environment via lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if c.Sentry.DSN == "" {
		if dsn, ok := lookup(EnvSentryDSN); ok {
			c.Sentry.DSN = dsn
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("F102").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	for _, p := range []string{c.Paths.WebSocket, c.Paths.Toast, c.Paths.Report, c.Paths.Metrics} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("F103").WithDetail("Path " + strconv.Quote(p) + " must start with '/'")
		}
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.Newf(errors.CategoryConfig, "unknown log level %q", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// SlogLevel returns the configured log level. Unknown levels map to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
