package dto

import (
	authdto "blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/comments/domain/entity"
)

// CommentReq represents the request body for POST /comments/:post_id.
type CommentReq struct {
	Body     string `json:"body" binding:"required,max=500"`
	ParentID *uint  `json:"parent_id" binding:"omitempty,min=1"`
}

// ResponseView is a direct reply shown inside its parent comment.
type ResponseView struct {
	ID   uint   `json:"id"`
	Body string `json:"body"`
}

// CommentView is the public representation of a comment.
type CommentView struct {
	ID        uint             `json:"id"`
	Body      string           `json:"body"`
	ParentID  *uint            `json:"parent_id"`
	Creator   authdto.UserView `json:"creator"`
	Responses []ResponseView   `json:"responses"`
}

// NewCommentView converts a comment entity with its preloaded creator and replies.
func NewCommentView(c *entity.Comment) CommentView {
	responses := make([]ResponseView, 0, len(c.Responses))
	for _, r := range c.Responses {
		responses = append(responses, ResponseView{ID: r.ID, Body: r.Body})
	}
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		ParentID:  c.ParentID,
		Creator:   authdto.NewUserView(c.Creator),
		Responses: responses,
	}
}

// NewCommentViews converts a list of comments. The result is never nil.
func NewCommentViews(comments []*entity.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c))
	}
	return views
}
