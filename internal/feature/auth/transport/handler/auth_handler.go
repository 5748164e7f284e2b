// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

// tokenExpiresLayout is the wall-clock format of token_expires.
const tokenExpiresLayout = "2006-01-02T15:04:05"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にアクセストークンを返します。
	Login(ctx context.Context, email, password string) (jwtmw.Token, error)
	// VerifyToken はトークンが現在有効かどうかを返します。
	VerifyToken(token string) bool
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はPOST /auth/access-tokenを処理します。
// - フォーム（またはJSON）をLoginReqにバインド
// - メールアドレス未登録は404、パスワード不一致・無効アカウントは401
// - 成功時はアクセストークン付きで201を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Username, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"detail": "User not found with this email: " + req.Username + ", please create an account first",
			})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		case errors.Is(err, usecase.ErrInactiveAccount):
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Inactive account"})
		default:
			internalError(c, err)
		}
		return
	}

	slog.Info("user login successful", "email", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.TokenRes{
		AccessToken:  token.Value,
		TokenType:    "bearer",
		TokenExpires: token.ExpiresAt.Local().Format(tokenExpiresLayout),
	})
}

// VerifyToken はPOST /auth/verify-tokenを処理します。
// 無効なトークンでもエラーにはせず{"valid": false}を返します。
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req dto.VerifyTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.VerifyTokenRes{Valid: h.auth.VerifyToken(req.Token)})
}

// internalError records err on the context for the recovery middleware and hides it from the client.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	slog.Error("request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
