// Package config provides configuration loading and validation for the
// CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/profile-optimizer/internal/llm"
)

// Config is the application configuration, loadable from a JSON file.
// All fields are optional; missing values use defaults or environment
// variables merged in by the CLI.
type Config struct {
	// Provider selects the AI backend: "gemini" or "openai".
	Provider string `json:"provider,omitempty"`
	// APIKey authenticates against the selected provider.
	APIKey string `json:"api_key,omitempty"`
	// Models overrides the per-tier model names.
	Models map[string]string `json:"models,omitempty"`

	// DatabasePath locates the SQLite session store.
	DatabasePath string `json:"database_path,omitempty"`
	// SessionNamespace isolates sessions sharing one store file.
	SessionNamespace string `json:"session_namespace,omitempty"`
	// DebounceMS is the persistence debounce window in milliseconds.
	DebounceMS int `json:"debounce_ms,omitempty"`

	// Port is the HTTP server listen port.
	Port int `json:"port,omitempty"`

	// JobDescription is a default target job description for optimize runs.
	JobDescription string `json:"job_description,omitempty"`
	// Verbose enables detailed progress output.
	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:         string(llm.ProviderGemini),
		DatabasePath:     defaultDatabasePath(),
		SessionNamespace: "default",
		DebounceMS:       500,
		Port:             8080,
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "profile-optimizer.db"
	}
	return filepath.Join(home, ".profile-optimizer", "session.db")
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.DebounceMS < 0 {
		return fmt.Errorf("config error: 'debounce_ms' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 0-65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags win over file values, which win over defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabasePath == "" {
		result.DatabasePath = defaults.DatabasePath
	}
	if result.SessionNamespace == "" {
		result.SessionNamespace = defaults.SessionNamespace
	}
	if result.JobDescription == "" {
		result.JobDescription = defaults.JobDescription
	}

	if result.DebounceMS == 0 {
		result.DebounceMS = defaults.DebounceMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields cannot distinguish unset from false, so flags always
	// win for those.

	return result
}

// Debounce returns the persistence debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// LLMConfig builds the model-client configuration for the selected
// provider, applying any per-tier overrides.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(c.Provider))
	for tier, model := range c.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	return cfg
}
