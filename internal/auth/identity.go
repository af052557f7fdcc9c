package auth

import (
	"context"
	"errors"
	"strings"
)

// Identity is the caller as known by the external identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

var (
	ErrMissingToken    = errors.New("authorization header required")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrResolverTimeout = errors.New("identity provider timed out")
)

// Resolver turns a bearer token into an Identity.
// Implementations return ErrInvalidToken or ErrResolverTimeout (possibly
// wrapped) so callers can log the cause; both are a 401 to the client.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
// Only the "Bearer " prefix is stripped; anything else is handed to the
// identity provider as-is.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
