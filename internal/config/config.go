package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// WebhookURL is the collector endpoint captures are delivered to.
	// Delivery is skipped entirely when empty.
	WebhookURL string `json:"webhook_url,omitempty"`

	// WebhookTimeoutSecs is the per-attempt HTTP timeout.
	WebhookTimeoutSecs int `json:"webhook_timeout_secs,omitempty"`

	// WebhookMaxAttempts caps delivery attempts per send (default 3).
	WebhookMaxAttempts int `json:"webhook_max_attempts,omitempty"`

	// WebhookBaseDelayMs is the first retry delay; it doubles per attempt.
	WebhookBaseDelayMs int `json:"webhook_base_delay_ms,omitempty"`

	// ClipboardMaxChars caps sanitized clipboard text (runes).
	ClipboardMaxChars int `json:"clipboard_max_chars,omitempty"`

	// RetentionDays is the default cutoff for cleanup when the caller
	// doesn't specify one.
	RetentionDays int `json:"retention_days,omitempty"`

	// WindowTimeoutMs bounds the active-window queries.
	WindowTimeoutMs int `json:"window_timeout_ms,omitempty"`

	// TabsTimeoutMs bounds each per-browser tab query.
	TabsTimeoutMs int `json:"tabs_timeout_ms,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WebhookTimeoutSecs: 10,
		WebhookMaxAttempts: 3,
		WebhookBaseDelayMs: 1000,
		ClipboardMaxChars:  10000,
		RetentionDays:      30,
		WindowTimeoutMs:    500,
		TabsTimeoutMs:      1000,
	}
}

// Load loads configuration from baseDir/config.json, then applies
// GLANCE_* environment overrides. Returns default config if the file
// doesn't exist. The baseDir parameter allows tests to use t.TempDir()
// instead of ~/.glance.
func Load(baseDir string) (*Config, error) {
	overlay, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg := Merge(DefaultConfig(), overlay)
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides file config with environment variables, which may
// come from the process environment or a .env file loaded in main.
func applyEnv(cfg *Config) {
	if url := strings.TrimSpace(os.Getenv("GLANCE_WEBHOOK_URL")); url != "" {
		cfg.WebhookURL = url
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.WebhookURL = overlay.WebhookURL
	if result.WebhookURL == "" {
		result.WebhookURL = base.WebhookURL
	}

	result.WebhookTimeoutSecs = pickInt(base.WebhookTimeoutSecs, overlay.WebhookTimeoutSecs)
	result.WebhookMaxAttempts = pickInt(base.WebhookMaxAttempts, overlay.WebhookMaxAttempts)
	result.WebhookBaseDelayMs = pickInt(base.WebhookBaseDelayMs, overlay.WebhookBaseDelayMs)
	result.ClipboardMaxChars = pickInt(base.ClipboardMaxChars, overlay.ClipboardMaxChars)
	result.RetentionDays = pickInt(base.RetentionDays, overlay.RetentionDays)
	result.WindowTimeoutMs = pickInt(base.WindowTimeoutMs, overlay.WindowTimeoutMs)
	result.TabsTimeoutMs = pickInt(base.TabsTimeoutMs, overlay.TabsTimeoutMs)
	result.DBMaxOpenConns = pickInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns)
	result.DBMaxIdleConns = pickInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns)

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// pickInt returns overlay if non-zero, else base.
func pickInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
