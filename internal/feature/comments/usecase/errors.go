// Package usecase implements the business logic for the comments feature.
package usecase

import (
	"errors"
	"fmt"

	"blog_backend/internal/shared/ownership"
)

var (
	// ErrCommentNotFound is returned when no comment has the requested id.
	ErrCommentNotFound = fmt.Errorf("comment %w", ownership.ErrNotFound)

	// ErrPostNotFound is returned when commenting on, or listing comments of, a missing post.
	ErrPostNotFound = fmt.Errorf("post %w", ownership.ErrNotFound)

	// ErrInvalidParent is returned when a reply's parent is missing or belongs to another post.
	ErrInvalidParent = errors.New("parent comment must exist on the same post")
)
