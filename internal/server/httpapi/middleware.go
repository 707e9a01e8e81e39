package httpapi

import (
	"time"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID keeps the caller's X-Request-ID, or assigns one, and echoes it
// in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog writes one structured line per request.
func AccessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"latency", time.Since(start),
			"request_id", requestID(c),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			logger.Error(ctx, "request failed", args...)
		case status >= 400:
			logger.Warn(ctx, "request rejected", args...)
		default:
			logger.Info(ctx, "request served", args...)
		}
	}
}
