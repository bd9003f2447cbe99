package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	authsvc "benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/claims"
	coreauth "benefitup/internal/core/auth"
	mdw "benefitup/internal/transport/http/middleware"
)

// Deps 两个引擎共用的依赖集合
type Deps struct {
	JWT     *coreauth.JWTer
	Catalog *catalog.Service
	Auth    *authsvc.Service
	Claims  *claims.Service
}

// NewAPIEngine 用户端引擎：目录浏览公开，领取相关接口要求登录
func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共分组：带 token 则识别身份（资格预检要用），不带照样可浏览
	public := api.Group("")
	public.Use(mdw.OptionalAuth(d.JWT))

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT, ""))

	mountDealActions(public, d.Catalog, d.Auth)
	mountAuthActions(public, authed, d.Auth)
	mountClaimActions(authed, d.Catalog, d.Auth, d.Claims)

	return r
}
