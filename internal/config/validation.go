package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Temperature and token budget bounds accepted by the generation service.
const (
	MinTemperature float32 = 0
	MaxTemperature float32 = 2
	MinMaxTokens           = 1
	MaxMaxTokens           = 65536
)

// Validate checks the whole configuration and returns the first problem
// found. All errors wrap a package sentinel so callers can branch with
// errors.Is.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateSupabase(); err != nil {
		return err
	}
	return c.validateServer()
}

func (c *Config) validateGeneration() error {
	switch c.Provider {
	case ProviderGemini, ProviderGoogleAI:
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)", ErrInvalidProvider, c.Provider, ProviderGemini, ProviderGoogleAI)
	}

	// Genkit reads GEMINI_API_KEY itself; fail here instead of on the first
	// generation call.
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY not set", ErrMissingAPIKey)
	}

	name := strings.TrimSpace(c.ModelName)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidModelName, c.ModelName)
	}

	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf("%w: %v (allowed range %v to %v)", ErrInvalidTemperature, c.Temperature, MinTemperature, MaxTemperature)
	}
	if c.MaxTokens < MinMaxTokens || c.MaxTokens > MaxMaxTokens {
		return fmt.Errorf("%w: %d (allowed range %d to %d)", ErrInvalidMaxTokens, c.MaxTokens, MinMaxTokens, MaxMaxTokens)
	}
	return nil
}

func (c *Config) validateSupabase() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("%w: SUPABASE_URL not set", ErrMissingSupabaseURL)
	}
	u, err := url.Parse(c.SupabaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSupabaseURL, c.SupabaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidSupabaseURL, u.Scheme)
	}
	if c.SupabaseAnonKey == "" && c.SupabaseServiceKey == "" {
		return fmt.Errorf("%w: set SUPABASE_ANON_KEY or SUPABASE_SERVICE_KEY", ErrMissingSupabaseKey)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidServerPort, c.ServerPort)
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("%w: %v/sec burst %d", ErrInvalidRateLimit, c.RateLimit, c.RateBurst)
	}
	return nil
}

// ServiceKey returns the strongest available Supabase key: the service key
// when present, otherwise the anon key.
func (c *Config) ServiceKey() string {
	if c.SupabaseServiceKey != "" {
		return c.SupabaseServiceKey
	}
	return c.SupabaseAnonKey
}
