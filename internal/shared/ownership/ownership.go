// Package ownership restricts mutation of a resource to the account that created it.
package ownership

import (
	"context"
	"errors"

	"blog_backend/internal/shared/identity"
)

var (
	// ErrNotFound is wrapped by every feature's "resource not found" error.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor does not own the resource.
	ErrForbidden = errors.New("you are not allowed to modify this resource")
)

// Owned is implemented by resources that record their creator.
type Owned interface {
	OwnerID() uint
}

// Authorize loads a resource and returns it only if actor owns it.
// A load error wrapping ErrNotFound is returned as is; the owner check is skipped.
func Authorize[T Owned](ctx context.Context, actor identity.Identity, load func(context.Context) (T, error)) (T, error) {
	resource, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if resource.OwnerID() != actor.ID {
		var zero T
		return zero, ErrForbidden
	}
	return resource, nil
}
