// Package llm wraps a single call to the external text-generation service.
//
// The client issues exactly one generation call per Generate invocation: no
// retries, no caching, no business logging. Timeouts and transport failures
// surface as classified errors from the fault package so callers never see
// raw SDK error types.
package llm

import "errors"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Turn is one role/content pair in a conversation.
type Turn struct {
	Role    Role
	Content string
}

// Conversation is an ordered sequence of turns. Built fresh per call and
// never mutated after construction.
type Conversation []Turn

// Sentinel errors for client input validation. These are deliberately
// unclassified: no service call was attempted, so callers upgrade them to
// the kind appropriate for their artifact.
var (
	// ErrEmptyConversation indicates the conversation contains no turns.
	ErrEmptyConversation = errors.New("conversation must contain at least one turn")

	// ErrEmptyTurn indicates a turn with no content.
	ErrEmptyTurn = errors.New("conversation turn has empty content")

	// ErrInvalidOptions indicates a non-positive timeout or token budget.
	ErrInvalidOptions = errors.New("call options must specify a positive timeout and token budget")
)

// NewConversation builds a conversation from a system framing turn and a
// user instruction.
func NewConversation(system, user string) Conversation {
	return Conversation{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

// validate checks the conversation contract: at least one turn, no empty
// content.
func (c Conversation) validate() error {
	if len(c) == 0 {
		return ErrEmptyConversation
	}
	for _, t := range c {
		if t.Content == "" {
			return ErrEmptyTurn
		}
	}
	return nil
}
