// Package entity defines the domain entities for the comments feature.
package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
)

// Comment is a reply to a post, or to another comment on the same post.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Body      string `gorm:"size:500;not null"`
	CreatorID uint   `gorm:"not null;index"`
	PostID    uint   `gorm:"not null;index"`
	ParentID  *uint  `gorm:"index"`

	Creator   *authentity.User `gorm:"foreignKey:CreatorID"`
	Responses []*Comment       `gorm:"foreignKey:ParentID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID returns the id of the user who wrote the comment.
func (c *Comment) OwnerID() uint { return c.CreatorID }
