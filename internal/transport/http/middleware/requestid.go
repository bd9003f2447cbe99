package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// RequestID 透传上游请求 ID，没有则本地生成。
// 网关带过来的值可能很长，截断到 64 防止日志被撑爆。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.Request.Header.Get(KeyRequestID))
		if rid == "" {
			rid = uuid.NewString()
		} else if len(rid) > 64 {
			rid = rid[:64]
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}
