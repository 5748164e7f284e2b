// Package identity defines the authenticated caller as seen by handlers and usecases.
package identity

import (
	"context"
	"errors"
)

// ErrUnknown is returned by an identity lookup when no account matches the subject.
var ErrUnknown = errors.New("unknown identity")

// Identity is a read-only snapshot of the account that made the request.
type Identity struct {
	ID       uint
	Name     string
	Username string
	Email    string
	IsActive bool
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the Identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
