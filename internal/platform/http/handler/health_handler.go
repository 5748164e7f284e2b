// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler creates a HealthHandler that runs checks on every GET and HEAD.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// 依存先（DB・Redis）のいずれかが応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	results, healthy := h.run(c.Request.Context())
	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unavailable"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}

func (h *HealthHandler) run(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := h.checks[name](checkCtx)
		cancel()
		if err != nil {
			slog.Warn("health check failed", "check", name, "error", err)
			results[name] = "unavailable"
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}
