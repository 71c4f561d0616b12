package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/profile-optimizer/internal/config"
	"github.com/jonathan/profile-optimizer/internal/llm"
)

// loadMergedConfig builds the effective configuration: file values (if
// --config was given) merged over built-in defaults, with the API key
// falling back to the provider's environment variable.
func loadMergedConfig(configPath string) (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}

	if merged.APIKey == "" {
		merged.APIKey = apiKeyFromEnv(llm.Provider(merged.Provider))
	}

	return merged, nil
}

func apiKeyFromEnv(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

// newClient builds the model client for the configuration, failing when
// no API key is available.
func newClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		name := "GEMINI_API_KEY"
		if llm.Provider(cfg.Provider) == llm.ProviderOpenAI {
			name = "OPENAI_API_KEY"
		}
		return nil, fmt.Errorf("API key is required (set %s or 'api_key' in the config file)", name)
	}
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
}

// readJobDescription resolves the job description: an explicit file
// wins over the configured default.
func readJobDescription(path string, cfg config.Config) (string, error) {
	if path == "" {
		return cfg.JobDescription, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(data), nil
}
