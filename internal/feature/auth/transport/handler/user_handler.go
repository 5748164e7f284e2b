package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

var passwordTooLongDetail = fmt.Sprintf("Password must be at most %d bytes", usecase.MaxPasswordBytes)

// UserUsecase defines account management operations.
type UserUsecase interface {
	Register(ctx context.Context, name, username, email, password string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, name, username, email string) (*entity.User, error)
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
	Deactivate(ctx context.Context, id uint) error
}

// UserHandler serves the /users endpoints.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateIdentity):
			slog.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Both username and email fields must be unique"})
		case errors.Is(err, usecase.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"detail": passwordTooLongDetail})
		default:
			internalError(c, err)
		}
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserView(user))
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserViews(users))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("User not found: id %d", id)})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserView(user))
}

// Update handles PUT /users for the authenticated user.
func (h *UserHandler) Update(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), me.ID, req.Name, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateIdentity) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Both username and email fields must be unique"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateUserReq{Name: user.Name, Username: user.Username, Email: user.Email})
}

// Delete handles DELETE /users by deactivating the authenticated user.
func (h *UserHandler) Delete(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), me.ID); err != nil {
		internalError(c, err)
		return
	}
	slog.Info("user deactivated", "user_id", me.ID)
	c.Status(http.StatusNoContent)
}

// ChangePassword handles PATCH /users/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	me, ok := jwtmw.CurrentIdentity(c)
	if !ok {
		internalError(c, errors.New("identity missing from context"))
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), me.ID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Your old password is not correct"})
		case errors.Is(err, usecase.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"detail": passwordTooLongDetail})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Password changed successfully"})
}
