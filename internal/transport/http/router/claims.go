package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/claims"
	"benefitup/internal/domain"
	"benefitup/internal/policy"
	mdw "benefitup/internal/transport/http/middleware"
)

// mountClaimActions 领取与我的领取记录。领取前强制过资格判定，
// 判定不通过不会触碰存储。
func mountClaimActions(authed *gin.RouterGroup, cat *catalog.Service, authSvc *auth.Service, claimSvc *claims.Service) {
	ez := New(authed)

	// --- POST /claims 领取 ---
	type claimIn struct {
		DealID string `json:"dealId" binding:"required"`
	}
	RegisterAction[claimIn, domain.Claim](ez, Action[claimIn, domain.Claim]{
		Method: http.MethodPost,
		Path:   "/claims",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *claimIn) (domain.Claim, error) {
			ctx := c.Request.Context()
			uid := c.GetString(mdw.KeyUserID)

			deal, err := cat.GetDeal(ctx, in.DealID)
			if err != nil {
				return domain.Claim{}, err
			}
			user, err := authSvc.FindUser(ctx, uid)
			if err != nil {
				return domain.Claim{}, err
			}
			if d := policy.CanClaim(deal, &user); !d.Allowed {
				return domain.Claim{}, Forbidden(string(d.Reason))
			}

			claim, err := claimSvc.Claim(ctx, uid, in.DealID)
			if err != nil {
				return domain.Claim{}, err
			}
			mdw.CountClaim()
			return claim, nil
		},
	})

	// --- GET /claims 我的领取记录 ---
	type listQ struct {
		Order string `form:"order"` // 空=追加序（最新在后），recent=最新在前
	}
	type listOut struct {
		Total int            `json:"total"`
		Items []domain.Claim `json:"items"`
	}
	RegisterAction[listQ, listOut](ez, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/claims",
		Binder: BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			items, err := claimSvc.ListClaims(c.Request.Context(), c.GetString(mdw.KeyUserID))
			if err != nil {
				return listOut{}, err
			}
			if in.Order == "recent" {
				for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
					items[i], items[j] = items[j], items[i]
				}
			}
			return listOut{Total: len(items), Items: items}, nil
		},
	})
}
