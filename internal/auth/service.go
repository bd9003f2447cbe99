// Package auth 登录与会话：按 email 查用户，查不到就自动注册。
// token 只是占位标识（下游无人校验），但按正规 JWT 签发，便于网关侧复用。
package auth

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"benefitup/internal/domain"
	"benefitup/internal/store"
)

// TokenIssuer 签发会话 token（见 core/auth.JWTer）
type TokenIssuer interface {
	Issue(uid, role string) (string, error)
}

type Service struct {
	db       *store.Locked
	sessions store.SessionStore
	tokens   TokenIssuer
	verify   VerifyPolicy
	now      func() time.Time
	newID    func() string
}

func NewService(db *store.Locked, sessions store.SessionStore, tokens TokenIssuer, verify VerifyPolicy) *Service {
	if verify == nil {
		verify = VerifyNone()
	}
	return &Service{
		db:       db,
		sessions: sessions,
		tokens:   tokens,
		verify:   verify,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Login 登录即注册：同一 email 永远命中同一个用户，不产生重复账号。
// 除底层存储故障外不会失败。
func (s *Service) Login(ctx context.Context, email, name string) (domain.User, string, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	snap, err := s.db.Load(ctx)
	if err != nil {
		return domain.User{}, "", false, err
	}
	if u, ok := findByEmail(snap.Users, email); ok {
		tok, err := s.openSession(ctx, u)
		return u, tok, false, err
	}

	// 未注册 → 建号。在 Update 内再查一次，防并发重复建号
	var u domain.User
	isNew := false
	err = s.db.Update(ctx, func(snap *store.Snapshot) error {
		if exist, ok := findByEmail(snap.Users, email); ok {
			u = exist
			return nil
		}
		u = s.newUser(email, name)
		isNew = true
		snap.Users = append(snap.Users, u)
		return nil
	})
	if err != nil {
		return domain.User{}, "", false, err
	}
	tok, err := s.openSession(ctx, u)
	return u, tok, isNew, err
}

// Resume 返回上次持久化的活跃会话，无则 (nil, nil)
func (s *Service) Resume(ctx context.Context) (*domain.Session, error) {
	return s.sessions.LoadSession(ctx)
}

// Logout 清掉活跃会话槽位
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.ClearSession(ctx)
}

// FindUser 按 id 查用户
func (s *Service) FindUser(ctx context.Context, id string) (domain.User, error) {
	snap, err := s.db.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range snap.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// ListUsers 全量用户（管理端）
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	snap, err := s.db.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Users, nil
}

func (s *Service) openSession(ctx context.Context, u domain.User) (string, error) {
	tok, err := s.tokens.Issue(u.ID, "user")
	if err != nil {
		return "", err
	}
	if err := s.sessions.SaveSession(ctx, domain.Session{User: u, Token: tok}); err != nil {
		return "", err
	}
	return tok, nil
}

func (s *Service) newUser(email, name string) domain.User {
	if name = strings.TrimSpace(name); name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = "user"
		}
	}
	return domain.User{
		ID:         s.newID(),
		Email:      email,
		Name:       name,
		IsVerified: s.verify(email),
		Avatar:     AvatarURL(email),
		CreatedAt:  s.now(),
	}
}

// AvatarURL 头像由 email 确定性派生
func AvatarURL(email string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(email)
}

func findByEmail(users []domain.User, email string) (domain.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}
