// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/transport/http/dto"
	"blog_backend/internal/feature/posts/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/shared/identity"
	"blog_backend/internal/shared/ownership"
	"blog_backend/internal/shared/pagination"
)

// PostUsecase defines the post operations used by the handler.
type PostUsecase interface {
	List(ctx context.Context, filter usecase.Filter, page pagination.Page) ([]*entity.Post, error)
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Create(ctx context.Context, actor identity.Identity, title, body string) (*entity.Post, error)
	Update(ctx context.Context, actor identity.Identity, id uint, title, body string) (*entity.Post, error)
	Delete(ctx context.Context, actor identity.Identity, id uint) error
}

// PostHandler serves the /posts endpoints.
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// List handles GET /posts?title=&body=&limit=&page=.
func (h *PostHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	page, err := pagination.Parse(q.Limit, q.Page)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	posts, err := h.posts.List(c.Request.Context(), usecase.Filter{Title: q.Title, Body: q.Body}, page)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostViews(posts))
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostView(post))
}

// Create handles POST /posts for the authenticated user.
func (h *PostHandler) Create(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}

	var req dto.PostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), me, req.Title, req.Body)
	if err != nil {
		internalError(c, err)
		return
	}
	slog.Info("post created", "post_id", post.ID, "user_id", me.ID)
	c.JSON(http.StatusCreated, dto.NewPostView(post))
}

// Update handles PUT /posts/:id. Only the creator may edit a post.
func (h *PostHandler) Update(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	var req dto.PostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), me, id, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, ownership.ErrForbidden) {
			slog.Warn("post update forbidden", "post_id", id, "user_id", me.ID)
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostView(post))
}

// Delete handles DELETE /posts/:id. The post's comments are removed with it.
func (h *PostHandler) Delete(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), me, id); err != nil {
		if errors.Is(err, ownership.ErrForbidden) {
			slog.Warn("post delete forbidden", "post_id", id, "user_id", me.ID)
		}
		h.fail(c, err)
		return
	}
	slog.Info("post deleted", "post_id", id, "user_id", me.ID)
	c.Status(http.StatusNoContent)
}

// fail maps ownership and lookup errors to 403/404 and everything else to 500.
func (h *PostHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ownership.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You cannot edit someone else's post"})
	case errors.Is(err, ownership.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Post not found"})
	default:
		internalError(c, err)
	}
}

func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid post id"})
		return 0, false
	}
	return uint(id), true
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.Error("request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
