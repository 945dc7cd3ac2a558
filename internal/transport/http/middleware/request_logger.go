package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per completed request. Tokens and passwords
// never make it into the log: no headers, no bodies.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts := time.Now()
		c.Next()

		latency := time.Since(ts)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}

		for _, e := range c.Errors {
			log.Error("handler error", zap.Error(e), zap.String("path", c.Request.URL.Path))
		}

		if c.IsAborted() || status >= 400 {
			log.Warn("request rejected", fields...)
			return
		}
		log.Info("request completed", fields...)
	}
}
