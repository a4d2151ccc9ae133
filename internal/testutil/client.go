package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/eduforge/eduforge/internal/llm"
)

// ScriptedClient implements llm.Client without any network or model
// runtime. Rules are matched against the first user turn, case-insensitive,
// first match wins; unmatched conversations return the fallback.
//
// Thread-safe for concurrent use.
type ScriptedClient struct {
	mu       sync.Mutex
	rules    []scriptRule
	fallback string
	calls    []llm.Conversation
}

type scriptRule struct {
	pattern  string
	response string
	err      error
	latency  time.Duration
}

// NewScriptedClient creates a client with the given fallback response.
func NewScriptedClient(fallback string) *ScriptedClient {
	return &ScriptedClient{fallback: fallback}
}

// Respond registers a pattern-response pair.
func (c *ScriptedClient) Respond(pattern, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, scriptRule{pattern: strings.ToLower(pattern), response: response})
}

// Fail registers a pattern that returns err.
func (c *ScriptedClient) Fail(pattern string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, scriptRule{pattern: strings.ToLower(pattern), err: err})
}

// RespondAfter registers a pattern whose response arrives after latency.
// The delay respects context cancellation.
func (c *ScriptedClient) RespondAfter(pattern, response string, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, scriptRule{pattern: strings.ToLower(pattern), response: response, latency: latency})
}

// Calls returns a copy of every conversation passed to Generate.
func (c *ScriptedClient) Calls() []llm.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]llm.Conversation, len(c.calls))
	copy(cp, c.calls)
	return cp
}

// Generate implements llm.Client.
func (c *ScriptedClient) Generate(ctx context.Context, conv llm.Conversation, _ llm.CallOptions) (string, error) {
	var userText string
	for _, turn := range conv {
		if turn.Role == llm.RoleUser {
			userText = turn.Content
			break
		}
	}

	c.mu.Lock()
	c.calls = append(c.calls, conv)
	var matched *scriptRule
	lower := strings.ToLower(userText)
	for i := range c.rules {
		if strings.Contains(lower, c.rules[i].pattern) {
			matched = &c.rules[i]
			break
		}
	}
	c.mu.Unlock()

	if matched != nil && matched.latency > 0 {
		select {
		case <-time.After(matched.latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if matched != nil && matched.err != nil {
		return "", matched.err
	}
	if matched != nil {
		return matched.response, nil
	}
	return c.fallback, nil
}

var _ llm.Client = (*ScriptedClient)(nil)
