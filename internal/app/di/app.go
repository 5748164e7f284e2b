// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blog_backend/internal/config"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	commentadapters "blog_backend/internal/feature/comments/adapters"
	commenthandler "blog_backend/internal/feature/comments/transport/handler"
	commentusecase "blog_backend/internal/feature/comments/usecase"
	postadapters "blog_backend/internal/feature/posts/adapters"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	postusecase "blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/cache"
	platformhandler "blog_backend/internal/platform/http/handler"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/password"
	"blog_backend/internal/platform/ratelimit"
)

// Rule names used in limiter keys.
const (
	RuleListPosts = "get-posts"
	RuleGetPost   = "get-post"
)

// App holds the handlers and middleware the router mounts.
type App struct {
	Auth     *authhandler.AuthHandler
	Users    *authhandler.UserHandler
	Posts    *posthandler.PostHandler
	Comments *commenthandler.CommentHandler
	Health   *platformhandler.HealthHandler

	// AuthRequired guards every authenticated route.
	AuthRequired gin.HandlerFunc
	// ListPostsLimit and GetPostLimit rate limit the public post reads.
	ListPostsLimit gin.HandlerFunc
	GetPostLimit   gin.HandlerFunc
}

// NewApp wires repositories, usecases and handlers over db and rdb.
func NewApp(cfg config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	tokens, err := jwtmw.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenClockSkew)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	postRepo := postadapters.NewPostRepository(db)
	commentRepo := commentadapters.NewCommentRepository(db)

	// Redisキャッシュでラップ
	cachedPosts := cache.NewCachingPostRepository(NewPostCacheClient(cfg, rdb), cfg.PostCacheTTL, postRepo, "posts")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens, cfg.AccessTokenTTL)
	userUC := authusecase.NewUserUsecase(userRepo, hasher)
	commentUC := commentusecase.NewCommentUsecase(commentRepo, postRepo)
	postUC := postusecase.NewPostUsecase(cachedPosts, commentUC)

	limiter := ratelimit.NewLimiter(ratelimit.NewRedisStore(rdb), cfg.RateLimitPrefix)

	return &App{
		Auth:     authhandler.NewAuthHandler(authUC),
		Users:    authhandler.NewUserHandler(userUC),
		Posts:    posthandler.NewPostHandler(postUC),
		Comments: commenthandler.NewCommentHandler(commentUC),
		Health:   platformhandler.NewHealthHandler(HealthChecks(db, rdb)),

		AuthRequired: jwtmw.AuthRequired(tokens, authUC),
		ListPostsLimit: limiter.Limit(ratelimit.Rule{
			Name:   RuleListPosts,
			Times:  cfg.PostsRateLimitTimes,
			Window: cfg.PostsRateLimitWindow,
			Key:    ratelimit.ClientIP,
		}),
		GetPostLimit: limiter.Limit(ratelimit.Rule{
			Name:   RuleGetPost,
			Times:  cfg.PostsRateLimitTimes,
			Window: cfg.PostsRateLimitWindow,
			Key:    ratelimit.ClientPath,
		}),
	}, nil
}

// NewPostCacheClient returns rdb, or nil when POST_CACHE_TTL disables the cache.
func NewPostCacheClient(cfg config.Config, rdb *redis.Client) *redis.Client {
	if cfg.PostCacheTTL <= 0 {
		return nil
	}
	return rdb
}

// HealthChecks pings the database and Redis.
func HealthChecks(db *gorm.DB, rdb *redis.Client) map[string]platformhandler.Check {
	return map[string]platformhandler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}
}
