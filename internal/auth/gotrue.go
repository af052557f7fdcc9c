package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
)

// GoTrueResolver asks the Supabase auth server who a token belongs to.
type GoTrueResolver struct {
	client gotrue.Client
}

// NewGoTrueResolver points the client at {baseURL}/auth/v1, which covers
// both hosted projects and self-hosted auth servers.
func NewGoTrueResolver(baseURL, apiKey string, timeout time.Duration) *GoTrueResolver {
	client := gotrue.New("", apiKey).
		WithCustomGoTrueURL(strings.TrimRight(baseURL, "/") + "/auth/v1").
		WithClient(http.Client{Timeout: timeout})
	return &GoTrueResolver{client: client}
}

type resolved struct {
	identity *Identity
	err      error
}

func (r *GoTrueResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	// GetUser takes no context; the HTTP client timeout bounds it and ctx
	// only stops us waiting.
	done := make(chan resolved, 1)
	go func() {
		id, err := r.getUser(token)
		done <- resolved{identity: id, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrResolverTimeout, ctx.Err())
		}
		return nil, ctx.Err()
	case res := <-done:
		return res.identity, res.err
	}
}

func (r *GoTrueResolver) getUser(token string) (*Identity, error) {
	user, err := r.client.WithToken(token).GetUser()
	if err != nil {
		switch {
		case isTimeout(err):
			return nil, fmt.Errorf("%w: %v", ErrResolverTimeout, err)
		case isRejected(err):
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	if user.ID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID.String(), Email: user.Email}, nil
}

// isRejected reports whether the auth server refused the token. The client
// only surfaces the status code in the error text.
func isRejected(err error) bool {
	var status int
	if _, scanErr := fmt.Sscanf(err.Error(), "response status code %d", &status); scanErr != nil {
		return false
	}
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
