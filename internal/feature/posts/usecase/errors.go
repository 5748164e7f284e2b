// Package usecase implements the business logic for the posts feature.
package usecase

import (
	"fmt"

	"blog_backend/internal/shared/ownership"
)

// ErrPostNotFound is returned when no post has the requested id.
var ErrPostNotFound = fmt.Errorf("post %w", ownership.ErrNotFound)
