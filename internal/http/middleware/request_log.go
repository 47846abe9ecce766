package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/http/response"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if ss := c.GetInt(response.ServiceStatusKey); ss != 0 {
			fields = append(fields, "service_status", ss)
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if caller := ctxutil.GetCaller(c.Request.Context()); caller != nil {
			fields = append(fields, "user_seq", caller.UserSeq)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
