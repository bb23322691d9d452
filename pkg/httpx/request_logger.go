package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/partswarm/internal/ports"
)

// RequestLogger — строка на запрос; уровень по статусу (5xx - error, 4xx - warn).
// request_id и peer_node добавляет логгер из контекста.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		logf := log.Infof
		switch {
		case status >= 500:
			logf = log.Errorf
		case status >= 400:
			logf = log.Warnf
		}
		logf(ctx, "http method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
