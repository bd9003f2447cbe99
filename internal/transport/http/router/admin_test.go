package router

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "benefitup/internal/auth"
	"benefitup/internal/catalog"
	"benefitup/internal/claims"
	coreauth "benefitup/internal/core/auth"
	resp "benefitup/internal/transport/http/response"
	"benefitup/internal/store"
	"go.uber.org/zap"
)

// 同一份 Deps 起两个引擎，模拟 api/admin 双端口共库
func newAdminFixture(t *testing.T) (api, admin *gin.Engine, jwter *coreauth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwter = &coreauth.JWTer{Secret: []byte("test-secret"), Issuer: "benefitup", TTL: time.Hour}
	backend := store.NewMemStore()
	db := store.NewLocked(backend)
	cat := catalog.New()

	d := Deps{
		JWT:     jwter,
		Catalog: cat,
		Auth:    authsvc.NewService(db, backend, jwter, authsvc.VerifyAll()),
		Claims:  claims.NewService(db, cat),
	}
	return NewAPIEngine(zap.NewNop(), d), NewAdminEngine(zap.NewNop(), d), jwter
}

func TestAdminRequiresAdminRole(t *testing.T) {
	api, admin, jwter := newAdminFixture(t)

	env := do(t, admin, http.MethodGet, "/admin/v1/users", "", nil)
	assert.Equal(t, resp.CodeUnauthorized, env.Code)

	// 普通用户 token 不够
	_, userTok := login(t, api, "founder@acme.io")
	env = do(t, admin, http.MethodGet, "/admin/v1/users", userTok, nil)
	assert.Equal(t, resp.CodeForbidden, env.Code)

	adminTok, err := jwter.Issue("ops", "admin")
	require.NoError(t, err)
	env = do(t, admin, http.MethodGet, "/admin/v1/users", adminTok, nil)
	assert.Equal(t, resp.CodeOK, env.Code)
}

func TestAdminStats(t *testing.T) {
	api, admin, jwter := newAdminFixture(t)

	_, tok := login(t, api, "a@acme.io")
	login(t, api, "b@acme.io")
	env := do(t, api, http.MethodPost, "/api/v1/claims", tok, gin.H{"dealId": "d1"})
	require.Equal(t, resp.CodeOK, env.Code)

	adminTok, err := jwter.Issue("ops", "admin")
	require.NoError(t, err)

	env = do(t, admin, http.MethodGet, "/admin/v1/stats", adminTok, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var stats struct {
		Users         int `json:"users"`
		VerifiedUsers int `json:"verifiedUsers"`
		Claims        int `json:"claims"`
		Deals         int `json:"deals"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, 2, stats.VerifiedUsers)
	assert.Equal(t, 1, stats.Claims)
	assert.Equal(t, 6, stats.Deals)

	env = do(t, admin, http.MethodGet, "/admin/v1/claims", adminTok, nil)
	require.Equal(t, resp.CodeOK, env.Code)
	var out struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 1, out.Total)
}
