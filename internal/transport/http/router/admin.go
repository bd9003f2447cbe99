package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "benefitup/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎：全部只读，要求 admin 角色 token
// （admin token 由运维另行签发，登录接口只发 user 角色）
func NewAdminEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, "admin"))
	mountAdminActions(admin, d)

	return r
}

// mountAdminActions 管理端接口集中在这里注册
func mountAdminActions(admin *gin.RouterGroup, d Deps) {
	ez := New(admin)

	// --- GET /admin/v1/users 用户列表 ---
	ez.GET("/users", func(c *gin.Context) (any, error) {
		users, err := d.Auth.ListUsers(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return gin.H{"total": len(users), "items": users}, nil
	})

	// --- GET /admin/v1/claims 全量领取记录 ---
	ez.GET("/claims", func(c *gin.Context) (any, error) {
		items, err := d.Claims.ListAll(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return gin.H{"total": len(items), "items": items}, nil
	})

	// --- GET /admin/v1/stats 概览计数 ---
	ez.GET("/stats", func(c *gin.Context) (any, error) {
		users, err := d.Auth.ListUsers(c.Request.Context())
		if err != nil {
			return nil, err
		}
		claims, err := d.Claims.ListAll(c.Request.Context())
		if err != nil {
			return nil, err
		}
		deals, err := d.Catalog.ListDeals(c.Request.Context())
		if err != nil {
			return nil, err
		}
		verified := 0
		for _, u := range users {
			if u.IsVerified {
				verified++
			}
		}
		return gin.H{
			"users":         len(users),
			"verifiedUsers": verified,
			"claims":        len(claims),
			"deals":         len(deals),
		}, nil
	})
}
