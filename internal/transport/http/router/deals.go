package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/domain"
	"benefitup/internal/policy"
	mdw "benefitup/internal/transport/http/middleware"
)

// mountDealActions 目录浏览 + 资格预检。全部只读，无需登录；
// 资格预检带 token 时按登录用户判，不带按未登录判。
func mountDealActions(public *gin.RouterGroup, cat *catalog.Service, authSvc *auth.Service) {
	ez := New(public)

	// --- GET /deals 目录列表（支持筛选） ---
	type listQ struct {
		Q        string `form:"q"`
		Category string `form:"category"` // Cloud/Marketing/DevTools/Finance/Design
		Level    string `form:"level"`    // all/public/locked
	}
	type listOut struct {
		Total int           `json:"total"`
		Items []domain.Deal `json:"items"`
	}
	RegisterAction[listQ, listOut](ez, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/deals",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			f := catalog.Filters{Query: in.Q}
			if in.Category != "" && in.Category != "All" {
				f.Category = domain.Category(in.Category)
				if !f.Category.Valid() {
					return listOut{}, BadRequest("unknown category")
				}
			}
			switch in.Level {
			case "", "all":
			case string(domain.AccessPublic), string(domain.AccessLocked):
				f.AccessLevel = domain.AccessLevel(in.Level)
			default:
				return listOut{}, BadRequest("unknown access level")
			}
			deals, err := cat.Find(c.Request.Context(), f)
			if err != nil {
				return listOut{}, err
			}
			return listOut{Total: len(deals), Items: deals}, nil
		},
	})

	// --- GET /deals/:id 权益详情 ---
	RegisterAction[struct{}, domain.Deal](ez, Action[struct{}, domain.Deal]{
		Method: http.MethodGet,
		Path:   "/deals/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Deal, error) {
			return cat.GetDeal(c.Request.Context(), c.Param("id"))
		},
	})

	// --- GET /deals/:id/eligibility 领取资格预检 ---
	RegisterAction[struct{}, policy.Decision](ez, Action[struct{}, policy.Decision]{
		Method: http.MethodGet,
		Path:   "/deals/:id/eligibility",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (policy.Decision, error) {
			deal, err := cat.GetDeal(c.Request.Context(), c.Param("id"))
			if err != nil {
				return policy.Decision{}, err
			}
			var user *domain.User
			if uid := c.GetString(mdw.KeyUserID); uid != "" {
				u, err := authSvc.FindUser(c.Request.Context(), uid)
				switch {
				case err == nil:
					user = &u
				case errors.Is(err, domain.ErrUserNotFound):
					// token 指向的用户已不存在 → 按未登录判
				default:
					return policy.Decision{}, err
				}
			}
			return policy.CanClaim(deal, user), nil
		},
	})
}
