package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/claims"
	coreauth "benefitup/internal/core/auth"
	"benefitup/internal/domain"
	"benefitup/internal/policy"
	resp "benefitup/internal/transport/http/response"
	"benefitup/internal/store"
	"go.uber.org/zap"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T, verify authsvc.VerifyPolicy) (*gin.Engine, *coreauth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwter := &coreauth.JWTer{Secret: []byte("test-secret"), Issuer: "benefitup", TTL: time.Hour}
	backend := store.NewMemStore()
	db := store.NewLocked(backend)
	cat := catalog.New()

	d := Deps{
		JWT:     jwter,
		Catalog: cat,
		Auth:    authsvc.NewService(db, backend, jwter, verify),
		Claims:  claims.NewService(db, cat),
	}
	return NewAPIEngine(zap.NewNop(), d), jwter
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func login(t *testing.T, r *gin.Engine, email string) (domain.User, string) {
	t.Helper()
	env := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email})
	require.Equal(t, resp.CodeOK, env.Code)
	var out struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.User, out.Token
}

func TestListDeals(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	env := do(t, r, http.MethodGet, "/api/v1/deals", "", nil)
	require.Equal(t, resp.CodeOK, env.Code)

	var out struct {
		Total int           `json:"total"`
		Items []domain.Deal `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 6, out.Total)
	assert.Equal(t, "d1", out.Items[0].ID)
}

func TestListDealsFilters(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	env := do(t, r, http.MethodGet, "/api/v1/deals?category=DevTools&level=locked", "", nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var out struct {
		Items []domain.Deal `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Items, 2)

	env = do(t, r, http.MethodGet, "/api/v1/deals?category=Gaming", "", nil)
	assert.Equal(t, resp.CodeBadRequest, env.Code)
}

func TestGetDeal(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	env := do(t, r, http.MethodGet, "/api/v1/deals/d4", "", nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var deal domain.Deal
	require.NoError(t, json.Unmarshal(env.Data, &deal))
	assert.Equal(t, "SecurePay", deal.PartnerName)

	env = do(t, r, http.MethodGet, "/api/v1/deals/ghost", "", nil)
	assert.Equal(t, resp.CodeNotFound, env.Code)
}

func TestEligibility(t *testing.T) {
	r, _ := newTestEngine(t, nil) // 默认策略：新账号未认证

	decide := func(token, dealID string) policy.Decision {
		env := do(t, r, http.MethodGet, "/api/v1/deals/"+dealID+"/eligibility", token, nil)
		require.Equal(t, resp.CodeOK, env.Code)
		var d policy.Decision
		require.NoError(t, json.Unmarshal(env.Data, &d))
		return d
	}

	// 未登录：public 权益也拒
	d := decide("", "d2")
	assert.False(t, d.Allowed)
	assert.Equal(t, policy.DenyNotLoggedIn, d.Reason)

	_, token := login(t, r, "founder@acme.io")

	d = decide(token, "d2") // public + 已登录 → 放行
	assert.True(t, d.Allowed)

	d = decide(token, "d1") // locked + 未认证 → 拒
	assert.False(t, d.Allowed)
	assert.Equal(t, policy.DenyVerificationRequired, d.Reason)
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	u1, tok1 := login(t, r, "founder@acme.io")
	assert.NotEmpty(t, tok1)
	assert.Equal(t, "founder", u1.Name)

	u2, tok2 := login(t, r, "founder@acme.io")
	assert.Equal(t, u1.ID, u2.ID) // 同 email 不建新号
	assert.NotEmpty(t, tok2)

	env := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, resp.CodeBadRequest, env.Code)
}

func TestMeAndSession(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	// 未登录
	env := do(t, r, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, resp.CodeUnauthorized, env.Code)
	env = do(t, r, http.MethodGet, "/api/v1/auth/session", "", nil)
	assert.Equal(t, resp.CodeNotFound, env.Code)

	u, token := login(t, r, "founder@acme.io")

	env = do(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var me domain.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, u.ID, me.ID)

	// 会话可恢复
	env = do(t, r, http.MethodGet, "/api/v1/auth/session", "", nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var sess domain.Session
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, u.ID, sess.User.ID)

	// 登出后恢复不到
	env = do(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	env = do(t, r, http.MethodGet, "/api/v1/auth/session", "", nil)
	assert.Equal(t, resp.CodeNotFound, env.Code)
}

func TestClaimFlow(t *testing.T) {
	r, _ := newTestEngine(t, authsvc.VerifyAll())

	// 未登录领取 → 401
	env := do(t, r, http.MethodPost, "/api/v1/claims", "", gin.H{"dealId": "d2"})
	assert.Equal(t, resp.CodeUnauthorized, env.Code)

	_, token := login(t, r, "founder@acme.io")

	// locked 权益，已认证 → 成功 pending
	env = do(t, r, http.MethodPost, "/api/v1/claims", token, gin.H{"dealId": "d1"})
	require.Equal(t, resp.CodeOK, env.Code)
	var c domain.Claim
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, domain.ClaimPending, c.Status)
	assert.Equal(t, "d1", c.DealID)
	assert.Equal(t, "CloudScale", c.PartnerName)

	// 未知权益 → 404 且列表不变
	env = do(t, r, http.MethodPost, "/api/v1/claims", token, gin.H{"dealId": "ghost"})
	assert.Equal(t, resp.CodeNotFound, env.Code)

	env = do(t, r, http.MethodGet, "/api/v1/claims", token, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var out struct {
		Total int            `json:"total"`
		Items []domain.Claim `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, 1, out.Total)
	assert.Equal(t, c.ID, out.Items[0].ID)
}

func TestClaimDeniedForUnverifiedOnLockedDeal(t *testing.T) {
	r, _ := newTestEngine(t, nil) // 未认证

	_, token := login(t, r, "founder@acme.io")

	env := do(t, r, http.MethodPost, "/api/v1/claims", token, gin.H{"dealId": "d1"})
	assert.Equal(t, resp.CodeForbidden, env.Code)
	assert.Equal(t, string(policy.DenyVerificationRequired), env.Msg)

	// 被拒的尝试不落库
	env = do(t, r, http.MethodGet, "/api/v1/claims", token, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var out struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 0, out.Total)

	// public 权益不受认证限制
	env = do(t, r, http.MethodPost, "/api/v1/claims", token, gin.H{"dealId": "d2"})
	assert.Equal(t, resp.CodeOK, env.Code)
}

func TestClaimsRecentOrder(t *testing.T) {
	r, _ := newTestEngine(t, authsvc.VerifyAll())
	_, token := login(t, r, "founder@acme.io")

	for _, id := range []string{"d2", "d4", "d6"} {
		env := do(t, r, http.MethodPost, "/api/v1/claims", token, gin.H{"dealId": id})
		require.Equal(t, resp.CodeOK, env.Code)
	}

	var out struct {
		Items []domain.Claim `json:"items"`
	}

	env := do(t, r, http.MethodGet, "/api/v1/claims", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "d2", out.Items[0].DealID) // 追加序

	env = do(t, r, http.MethodGet, "/api/v1/claims?order=recent", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "d6", out.Items[0].DealID) // 最新在前
}

func TestHealth(t *testing.T) {
	r, _ := newTestEngine(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
