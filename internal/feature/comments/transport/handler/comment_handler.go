// Package handler はcommentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/comments/transport/http/dto"
	"blog_backend/internal/feature/comments/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/shared/identity"
	"blog_backend/internal/shared/ownership"
	"blog_backend/internal/shared/pagination"
)

// CommentUsecase defines the comment operations used by the handler.
type CommentUsecase interface {
	Create(ctx context.Context, actor identity.Identity, postID uint, body string, parentID *uint) (*entity.Comment, error)
	List(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error)
	Delete(ctx context.Context, actor identity.Identity, id uint) error
}

// CommentHandler serves the /comments endpoints.
type CommentHandler struct {
	comments CommentUsecase
}

// NewCommentHandler はCommentHandlerの新しいインスタンスを生成します。
func NewCommentHandler(comments CommentUsecase) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create handles POST /comments/:post_id.
func (h *CommentHandler) Create(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	var req dto.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), me, postID, req.Body, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Post not found"})
		case errors.Is(err, usecase.ErrInvalidParent):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Parent comment not found on this post"})
		default:
			internalError(c, err)
		}
		return
	}

	slog.Info("comment created", "comment_id", comment.ID, "post_id", postID, "user_id", me.ID)
	c.JSON(http.StatusCreated, dto.NewCommentView(comment))
}

// List handles GET /comments/:post_id?limit=&page=.
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	page, err := pagination.Parse(c.Query("limit"), c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	comments, err := h.comments.List(c.Request.Context(), postID, page)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Post not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentViews(comments))
}

// Delete handles DELETE /comments/:comment_id. Replies below the comment are removed with it.
func (h *CommentHandler) Delete(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), me, id); err != nil {
		switch {
		case errors.Is(err, ownership.ErrForbidden):
			slog.Warn("comment delete forbidden", "comment_id", id, "user_id", me.ID)
			c.JSON(http.StatusForbidden, gin.H{"detail": "You cannot delete someone else's comment"})
		case errors.Is(err, ownership.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Comment not found"})
		default:
			internalError(c, err)
		}
		return
	}

	slog.Info("comment deleted", "comment_id", id, "user_id", me.ID)
	c.Status(http.StatusNoContent)
}

// pathID parses a positive integer path parameter, answering 400 when it is not one.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.Error("request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
