package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/logging"
)

// Recovery turns panics into 500 responses and reports them, together with every
// error a handler recorded via c.Error on a 5xx response, to Sentry.
// A nil hub uses the global one.
func Recovery(hub *sentry.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := hub
		if base == nil {
			base = sentry.CurrentHub()
		}
		local := base.Clone()
		local.Scope().SetRequest(c.Request)
		local.Scope().SetTag("request_id", c.GetString(logging.ContextRequestID))

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			local.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("route", c.FullPath())
				scope.SetExtra("stack", string(debug.Stack()))
				local.CaptureException(fmt.Errorf("panic: %v", rec))
			})
			slog.Error("panic_recovered",
				"panic", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(logging.ContextRequestID),
			)
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
				return
			}
			c.Abort()
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		for _, e := range c.Errors {
			local.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("route", c.FullPath())
				local.CaptureException(e.Err)
			})
		}
	}
}
