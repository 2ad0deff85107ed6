package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/logging"
)

// DirName is the per-user and per-project config directory.
const DirName = ".shadotui"

// Config holds all shadotui configuration.
type Config struct {
	Ticks      TicksConfig      `yaml:"ticks"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// TicksConfig holds the two loop periods in milliseconds.
type TicksConfig struct {
	AppMS    int `yaml:"app_ms"`    // Logic tick period (default: 1000)
	RenderMS int `yaml:"render_ms"` // Render tick period (default: 50)
}

// ProcessingConfig controls the delay used by scheduled counter updates.
type ProcessingConfig struct {
	DelayMS int `yaml:"delay_ms"` // default: 5000
}

// LoggingConfig controls the JSONL session logger.
type LoggingConfig struct {
	Dir   string `yaml:"dir"`   // default: ~/.shadotui/logs
	Level string `yaml:"level"` // debug, info, warn, error
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// TracingConfig controls dispatch span export.
type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// NotifyConfig controls where host notifications are published.
// An empty NATSURL keeps notifications in process.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Ticks: TicksConfig{
			AppMS:    1000,
			RenderMS: 50,
		},
		Processing: ProcessingConfig{
			DelayMS: 5000,
		},
		Logging: LoggingConfig{
			Dir:   filepath.Join("~", DirName, "logs"),
			Level: logging.LevelInfo.String(),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
		},
		Tracing: TracingConfig{
			Enabled: false,
			File:    filepath.Join("~", DirName, "traces.jsonl"),
		},
		Notify: NotifyConfig{
			Subject: "shadotui.notifications",
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.shadotui/config.yaml, ./.shadotui/config.yaml, then env.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, DirName, "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoadError(err, userConfigPath)
		}
	}

	projectConfigPath := filepath.Join(".", DirName, "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, wrapLoadError(err, projectConfigPath)
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path in place of
// the default locations.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, expandHomeDir(path)); err != nil {
		return nil, wrapLoadError(err, path)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func wrapLoadError(err error, path string) error {
	code := errors.ErrCodeConfigLoad
	if _, ok := err.(*parseError); ok {
		code = errors.ErrCodeConfigParse
	}
	return errors.Wrap(err, code, "loading config").WithContext("path", path)
}

func applyEnvOverrides(cfg *Config) error {
	if err := envInt("SHADOTUI_APP_TICK_MS", &cfg.Ticks.AppMS); err != nil {
		return err
	}
	if err := envInt("SHADOTUI_RENDER_TICK_MS", &cfg.Ticks.RenderMS); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("SHADOTUI_LOG_DIR")); v != "" {
		cfg.Logging.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("SHADOTUI_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SHADOTUI_METRICS_LISTEN")); v != "" {
		cfg.Metrics.Listen = v
		cfg.Metrics.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv("SHADOTUI_NATS_URL")); v != "" {
		cfg.Notify.NATSURL = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid environment value").
			WithContext("key", key)
	}
	*dst = n
	return nil
}

// Validate rejects configurations the runtime cannot start with.
func (c *Config) Validate() error {
	if c.Ticks.AppMS <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "app tick period must be positive, got %dms", c.Ticks.AppMS)
	}
	if c.Ticks.RenderMS <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "render tick period must be positive, got %dms", c.Ticks.RenderMS)
	}
	if c.Processing.DelayMS < 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "processing delay must not be negative, got %dms", c.Processing.DelayMS)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging level")
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Listen) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "metrics enabled without a listen address")
	}
	if c.Tracing.Enabled && strings.TrimSpace(c.Tracing.File) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "tracing enabled without an output file")
	}
	if c.Notify.NATSURL != "" && strings.TrimSpace(c.Notify.Subject) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "notify.subject is required with a NATS url")
	}
	return nil
}

// TickRates returns the logic and render tick periods.
func (c *Config) TickRates() (app, render time.Duration) {
	return time.Duration(c.Ticks.AppMS) * time.Millisecond,
		time.Duration(c.Ticks.RenderMS) * time.Millisecond
}

// ProcessingDelay returns the delay before a scheduled update lands.
func (c *Config) ProcessingDelay() time.Duration {
	return time.Duration(c.Processing.DelayMS) * time.Millisecond
}

// LogDir returns the log directory with ~ expanded.
func (c *Config) LogDir() string {
	return expandHomeDir(c.Logging.Dir)
}

// TraceFile returns the trace output path with ~ expanded.
func (c *Config) TraceFile() string {
	return expandHomeDir(c.Tracing.File)
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parsing YAML: %v", e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}
