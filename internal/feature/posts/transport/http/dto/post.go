package dto

import (
	authdto "blog_backend/internal/feature/auth/transport/http/dto"
	commentdto "blog_backend/internal/feature/comments/transport/http/dto"
	"blog_backend/internal/feature/posts/domain/entity"
)

// PostReq represents the request body for POST /posts and PUT /posts/:id.
type PostReq struct {
	Title string `json:"title" binding:"required,max=50"`
	Body  string `json:"body" binding:"required,max=500"`
}

// ListQuery holds the GET /posts query parameters.
type ListQuery struct {
	Title string `form:"title"`
	Body  string `form:"body"`
	Limit string `form:"limit"`
	Page  string `form:"page"`
}

// PostView is the public representation of a post with its comments.
type PostView struct {
	ID       uint                     `json:"id"`
	Title    string                   `json:"title"`
	Body     string                   `json:"body"`
	Creator  authdto.UserView         `json:"creator"`
	Comments []commentdto.CommentView `json:"comments"`
}

// NewPostView converts a post entity with its preloaded creator and comments.
func NewPostView(p *entity.Post) PostView {
	return PostView{
		ID:       p.ID,
		Title:    p.Title,
		Body:     p.Body,
		Creator:  authdto.NewUserView(p.Creator),
		Comments: commentdto.NewCommentViews(p.Comments),
	}
}

// NewPostViews converts a list of posts. The result is never nil.
func NewPostViews(posts []*entity.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return views
}
