package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "padel-ranking-api/internal/transport/http/response"
)

// Recovery 捕获 handler panic，记日志并返回统一信封
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("rid", c.GetString(KeyRequestID)),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				resp.Abort(c, resp.CodeServerError, "internal error")
			}
		}()
		c.Next()
	}
}
