package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderEndpoint describes how to reach one mobile-money network's gateway
type ProviderEndpoint struct {
	BaseURL      string        `yaml:"base_url"`
	APIKeyEnv    string        `yaml:"api_key_env"`
	RateLimitRPS float64       `yaml:"rate_limit_rps"`
	Burst        int           `yaml:"burst"`
	Timeout      time.Duration `yaml:"timeout"`
}

// APIKey resolves the endpoint's API key from the environment
func (e ProviderEndpoint) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

type providersFile struct {
	Providers map[string]ProviderEndpoint `yaml:"providers"`
}

// LoadProviderEndpoints reads the providers file, keyed by provider name
func LoadProviderEndpoints(path string) (map[string]ProviderEndpoint, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file: %w", err)
	}

	return ParseProviderEndpoints(raw)
}

// ParseProviderEndpoints decodes a providers document
func ParseProviderEndpoints(raw []byte) (map[string]ProviderEndpoint, error) {
	var file providersFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse providers file: %w", err)
	}

	for name, endpoint := range file.Providers {
		if endpoint.BaseURL == "" {
			return nil, fmt.Errorf("provider %s: base_url is required", name)
		}
		if endpoint.RateLimitRPS < 0 {
			return nil, fmt.Errorf("provider %s: rate_limit_rps cannot be negative", name)
		}
		if endpoint.Burst <= 0 {
			endpoint.Burst = 1
		}
		file.Providers[name] = endpoint
	}

	return file.Providers, nil
}
