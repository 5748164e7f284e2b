// Package entity defines the domain entities for the posts feature.
package entity

import (
	"time"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	commententity "blog_backend/internal/feature/comments/domain/entity"
)

// Post is an article written by a user.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:50;not null" json:"title"`
	Body      string `gorm:"size:500;not null" json:"body"`
	CreatorID uint   `gorm:"not null;index" json:"creator_id"`

	Creator  *authentity.User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Comments []*commententity.Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID returns the id of the user who wrote the post.
func (p *Post) OwnerID() uint { return p.CreatorID }
