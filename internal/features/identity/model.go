package identity

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned by verifiers for tokens they cannot accept
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller as reported by the identity provider
type Identity struct {
	Subject        string `json:"subject"`
	DisplayName    string `json:"displayName,omitempty"`
	ContactAddress string `json:"contactAddress,omitempty"`
	Provider       string `json:"provider"`
}

// Verifier turns a bearer token into an Identity
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}

// ContextProvider answers "who is the current caller" from the request context.
// The HTTP auth middleware and the CLI both populate that context after verifying a token.
type ContextProvider struct{}

func (ContextProvider) CurrentIdentity(ctx context.Context) (*Identity, bool) {
	return FromContext(ctx)
}
