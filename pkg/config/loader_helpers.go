package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type parseError struct {
	err error
}

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return &parseError{err: err}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &parseError{err: err}
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Zero values only win when the
// key is present in the file.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if fieldSet(raw, "ticks", "app_ms") {
		base.Ticks.AppMS = override.Ticks.AppMS
	}
	if fieldSet(raw, "ticks", "render_ms") {
		base.Ticks.RenderMS = override.Ticks.RenderMS
	}
	if fieldSet(raw, "processing", "delay_ms") {
		base.Processing.DelayMS = override.Processing.DelayMS
	}

	if override.Logging.Dir != "" {
		base.Logging.Dir = override.Logging.Dir
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if fieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	if override.Metrics.Listen != "" {
		base.Metrics.Listen = override.Metrics.Listen
	}

	if fieldSet(raw, "tracing", "enabled") {
		base.Tracing.Enabled = override.Tracing.Enabled
	}
	if override.Tracing.File != "" {
		base.Tracing.File = override.Tracing.File
	}

	if override.Notify.NATSURL != "" {
		base.Notify.NATSURL = override.Notify.NATSURL
	}
	if override.Notify.Subject != "" {
		base.Notify.Subject = override.Notify.Subject
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
