// Package router mounts every endpoint on a gin engine.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"blog_backend/internal/app/di"
	"blog_backend/internal/config"
	"blog_backend/internal/platform/logging"
	"blog_backend/internal/platform/observability"
)

// NewRouter builds the engine with the request pipeline:
// request id, access log, recovery, timeout, CORS, then per-route limiter and guard.
func NewRouter(cfg config.Config, app *di.App, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		logging.RequestID(),
		logging.AccessLog(logger),
		observability.Recovery(nil),
		logging.Timeout(cfg.RequestTimeout),
	)
	// CORS追加（許可オリジンが設定されている場合のみ）
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}

	// 認証不要
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "A simple Blog API"})
	})
	// 導通確認用
	r.GET("/healthz", app.Health.Health)
	r.HEAD("/healthz", app.Health.Health)
	r.OPTIONS("/healthz", app.Health.Health)

	// ログイン（JWT 発行）
	r.POST("/auth/access-token", app.Auth.Login)
	r.POST("/auth/verify-token", app.Auth.VerifyToken)
	// 新規ユーザー登録
	r.POST("/users", app.Users.Register)

	// レート制限付きの公開エンドポイント
	r.GET("/posts", app.ListPostsLimit, app.Posts.List)
	r.GET("/posts/:id", app.GetPostLimit, app.Posts.Get)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(app.AuthRequired)
	{
		auth.GET("/users", app.Users.List)
		auth.GET("/users/:id", app.Users.Get)
		auth.PUT("/users", app.Users.Update)
		auth.DELETE("/users", app.Users.Delete)
		auth.PATCH("/users/change-password", app.Users.ChangePassword)

		auth.POST("/posts", app.Posts.Create)
		auth.PUT("/posts/:id", app.Posts.Update)
		auth.DELETE("/posts/:id", app.Posts.Delete)

		auth.POST("/comments/:post_id", app.Comments.Create)
		auth.GET("/comments/:post_id", app.Comments.List)
		auth.DELETE("/comments/:comment_id", app.Comments.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", logging.HeaderRequestID)
	c.ExposeHeaders = []string{logging.HeaderRequestID, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	return c
}
