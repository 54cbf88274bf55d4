package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "compass.user"

// UserContext carries the authenticated user identity through a request.
// The current user is always a context value, never package-level state, so
// callers can distinguish "not yet known" from "known to be absent".
type UserContext struct {
	UserID string
	Email  string
}

// ErrNoUserInContext is returned when no authenticated user is present
var ErrNoUserInContext = errors.New("no authenticated user in context")

// SetUserInContext attaches the user identity to a context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user identity from a context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
