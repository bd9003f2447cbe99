package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benefitup/internal/auth"
	"benefitup/internal/domain"
	mdw "benefitup/internal/transport/http/middleware"
)

// mountAuthActions 登录即注册、会话恢复、登出、当前用户
func mountAuthActions(public, authed *gin.RouterGroup, svc *auth.Service) {
	ezPublic := New(public)
	ezAuth := New(authed)

	// --- POST /auth/login：查不到就自动注册，总是发新 token ---
	type loginIn struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"  binding:"omitempty,max=64"` // 首次注册可用
	}
	type loginOut struct {
		Token string      `json:"token"`
		IsNew bool        `json:"isNew"`
		User  domain.User `json:"user"`
	}
	RegisterAction[loginIn, loginOut](ezPublic, Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			u, tok, isNew, err := svc.Login(c.Request.Context(), in.Email, in.Name)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Token: tok, IsNew: isNew, User: u}, nil
		},
	})

	// --- GET /auth/session：恢复上次持久化的会话 ---
	RegisterAction[struct{}, domain.Session](ezPublic, Action[struct{}, domain.Session]{
		Method: http.MethodGet,
		Path:   "/auth/session",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Session, error) {
			sess, err := svc.Resume(c.Request.Context())
			if err != nil {
				return domain.Session{}, err
			}
			if sess == nil {
				return domain.Session{}, NotFound("no active session")
			}
			return *sess, nil
		},
	})

	// --- POST /auth/logout ---
	RegisterAction[struct{}, gin.H](ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := svc.Logout(c.Request.Context()); err != nil {
				return nil, err
			}
			return gin.H{"ok": 1}, nil
		},
	})

	// --- GET /me ---
	RegisterAction[struct{}, domain.User](ezAuth, Action[struct{}, domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.User, error) {
			return svc.FindUser(c.Request.Context(), c.GetString(mdw.KeyUserID))
		},
	})
}
