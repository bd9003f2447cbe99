package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"benefitup/internal/core/auth"
	resp "benefitup/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 强制登录；requireRole 非空时还要求对应角色
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth 带了合法 token 就识别身份，没带照样放行。
// 资格预检接口（未登录也能问）挂这个。
func OptionalAuth(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if strings.HasPrefix(ah, "Bearer ") {
			if claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer ")); err == nil {
				c.Set(KeyUserID, claims.UID)
				c.Set(KeyRole, claims.Role)
			}
		}
		c.Next()
	}
}
