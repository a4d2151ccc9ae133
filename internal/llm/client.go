package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/eduforge/eduforge/internal/fault"
)

// Client is the capability to produce text from one conversation. Consumers
// depend on this interface; tests substitute a mock model or a fake client.
type Client interface {
	Generate(ctx context.Context, conv Conversation, opts CallOptions) (string, error)
}

// Config contains all required parameters for the Genkit-backed client.
type Config struct {
	Genkit    *genkit.Genkit
	ModelName string // Provider-qualified model name (e.g., "googleai/gemini-2.5-flash")
	Logger    *slog.Logger

	// Defaults merged under every call's options (zero-value uses DefaultCallOptions).
	Defaults CallOptions

	// RateLimiter optionally throttles outbound calls (nil = use default).
	RateLimiter *rate.Limiter
}

// validate checks if all required parameters are present.
func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// GenkitClient issues generation calls through a Genkit model.
//
// All configuration is captured immutably at construction time, so a single
// client is safe for concurrent use by fan-out generators.
type GenkitClient struct {
	g         *genkit.Genkit
	modelName string
	defaults  CallOptions
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New creates a GenkitClient with required configuration.
func New(cfg Config) (*GenkitClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	defaults := cfg.Defaults.merged(DefaultCallOptions())

	// Default: 10 calls/sec sustained, burst of 20. Fan-out generators issue
	// at most a handful of concurrent calls, so this only guards against
	// pathological callers.
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 20)
	}

	return &GenkitClient{
		g:         cfg.Genkit,
		modelName: cfg.ModelName,
		defaults:  defaults,
		limiter:   limiter,
		logger:    cfg.Logger,
	}, nil
}

// Generate issues exactly one call to the generation service and returns the
// completion text.
//
// The conversation must contain at least one turn; merged options must carry
// a positive timeout and token budget. The timeout bounds the whole call: if
// the service has not responded in time, a Timeout-kind error is returned
// and the call is abandoned.
func (c *GenkitClient) Generate(ctx context.Context, conv Conversation, opts CallOptions) (string, error) {
	if err := conv.validate(); err != nil {
		return "", err
	}

	merged := opts.merged(c.defaults)
	if err := merged.validate(); err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", classify(err, merged.Timeout)
	}

	callCtx, cancel := context.WithTimeout(ctx, merged.Timeout)
	defer cancel()

	system, messages := splitConversation(conv)

	genOpts := []ai.GenerateOption{
		ai.WithModelName(c.modelName),
		ai.WithMessages(messages...),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(merged.Temperature),
			MaxOutputTokens: int32(merged.MaxTokens),
		}),
	}
	if system != "" {
		genOpts = append(genOpts, ai.WithSystem(system))
	}

	start := time.Now()
	resp, err := genkit.Generate(callCtx, c.g, genOpts...)
	if err != nil {
		return "", classify(err, merged.Timeout)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fault.New(fault.KindTransport, "generation service returned an empty completion")
	}

	c.logger.Debug("generation call completed",
		"model", c.modelName,
		"turns", len(conv),
		"elapsed", time.Since(start),
		"chars", len(text),
	)
	return text, nil
}

// splitConversation separates system framing from user messages. Multiple
// system turns are joined in order; user turns become model messages.
func splitConversation(conv Conversation) (string, []*ai.Message) {
	var system []string
	var messages []*ai.Message
	for _, t := range conv {
		switch t.Role {
		case RoleSystem:
			system = append(system, t.Content)
		default:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(t.Content)))
		}
	}
	return strings.Join(system, "\n\n"), messages
}

var _ Client = (*GenkitClient)(nil)
