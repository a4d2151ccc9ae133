// Package auth resolves the ambient authenticated identity.
//
// Operations that persist content require a signed-in user. The HTTP layer
// places the caller's access token on the request context; the Supabase
// provider exchanges it for a user identity. The CLI uses a static provider.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"github.com/eduforge/eduforge/internal/fault"
)

// Identity is a resolved authenticated user.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Provider resolves the current user. Implementations return an
// Unauthenticated-kind error when no identity is available; callers must not
// proceed to storage on that error.
type Provider interface {
	CurrentUser(ctx context.Context) (Identity, error)
}

type ctxKey int

const tokenKey ctxKey = 0

// WithToken returns a context carrying the caller's access token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext extracts the access token placed by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}

// SupabaseProvider validates access tokens against Supabase auth.
type SupabaseProvider struct {
	client *supabase.Client
}

// NewSupabaseProvider wraps a Supabase client.
func NewSupabaseProvider(client *supabase.Client) *SupabaseProvider {
	return &SupabaseProvider{client: client}
}

// CurrentUser resolves the token on ctx to a user identity.
func (p *SupabaseProvider) CurrentUser(ctx context.Context) (Identity, error) {
	tok, ok := TokenFromContext(ctx)
	if !ok {
		return Identity{}, fault.New(fault.KindUnauthenticated, "no access token on request")
	}

	// GetUser does not take a context; the token-scoped client applies it to
	// the underlying HTTP request.
	user, err := p.client.Auth.WithToken(tok).GetUser()
	if err != nil {
		return Identity{}, fault.Wrap(fault.KindUnauthenticated, "access token rejected", err)
	}

	return Identity{ID: user.ID, Email: user.Email}, nil
}

// StaticProvider returns a fixed identity, or a fixed error when Err is set.
// Used by the CLI (service-role operation) and by tests.
type StaticProvider struct {
	Identity Identity
	Err      error
}

// CurrentUser implements Provider.
func (p *StaticProvider) CurrentUser(_ context.Context) (Identity, error) {
	if p.Err != nil {
		return Identity{}, p.Err
	}
	if p.Identity.ID == uuid.Nil {
		return Identity{}, fault.New(fault.KindUnauthenticated, "no signed-in user")
	}
	return p.Identity, nil
}

var (
	_ Provider = (*SupabaseProvider)(nil)
	_ Provider = (*StaticProvider)(nil)
)
