package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/http/response"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

// Recover turns a handler panic into an UNKNOWN_ERROR envelope.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			if log != nil {
				log.Error("panic in handler",
					"path", c.Request.URL.Path,
					"request_id", ctxutil.RequestID(c.Request.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
			}
			if !c.Writer.Written() {
				response.AbortWithStatus(c, envelope.UnknownError, "")
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}

// MaxBodyBytes caps request bodies; handlers see a read error past the cap.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
