package llm

import "time"

// Default call options, matching the limits the service was tuned with.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
	DefaultTimeout     = 30 * time.Second
)

// CallOptions configures one generation call. Zero-value fields fall back to
// the client defaults at call time; explicit values win.
type CallOptions struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultCallOptions returns the baseline options merged under every call.
func DefaultCallOptions() CallOptions {
	return CallOptions{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// merged overlays o on top of defaults. Only zero fields inherit.
func (o CallOptions) merged(defaults CallOptions) CallOptions {
	out := o
	if out.Temperature == 0 {
		out.Temperature = defaults.Temperature
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaults.MaxTokens
	}
	if out.Timeout == 0 {
		out.Timeout = defaults.Timeout
	}
	return out
}

// validate checks the post-merge contract: positive timeout and budget.
func (o CallOptions) validate() error {
	if o.Timeout <= 0 || o.MaxTokens <= 0 {
		return ErrInvalidOptions
	}
	return nil
}
