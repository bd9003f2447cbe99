// Package store 持久化快照存储：整库一个 blob（users + claims），整读整写。
// 另有一个独立槽位保存当前活跃会话（user+token），用于重启后恢复登录态。
package store

import (
	"context"
	"sync"

	"benefitup/internal/domain"
)

// Snapshot 全量状态快照。Save 为 last-writer-wins 整体覆盖，无合并语义。
type Snapshot struct {
	Users  []domain.User  `json:"users"`
	Claims []domain.Claim `json:"claims"`
}

// Clone 深拷贝，避免调用方持有内部切片
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users:  make([]domain.User, len(s.Users)),
		Claims: make([]domain.Claim, len(s.Claims)),
	}
	copy(out.Users, s.Users)
	copy(out.Claims, s.Claims)
	return out
}

// Store 快照槽位。槽位不存在时 Load 返回空快照而非错误。
// 所有 I/O 失败以 domain.StorageError 形式返回。
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// SessionStore 活跃会话槽位。无会话时 LoadSession 返回 (nil, nil)。
type SessionStore interface {
	LoadSession(ctx context.Context) (*domain.Session, error)
	SaveSession(ctx context.Context, sess domain.Session) error
	ClearSession(ctx context.Context) error
}

// Backend 一个后端同时提供两个槽位
type Backend interface {
	Store
	SessionStore
}

// Locked 在任意 Store 外加互斥锁，把“读-改-写整个快照”串行化。
// 浏览器单线程模型里这层是隐式的；并发 HTTP 服务必须显式化，否则丢更新。
type Locked struct {
	mu sync.Mutex
	s  Store
}

func NewLocked(s Store) *Locked { return &Locked{s: s} }

func (l *Locked) Load(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Load(ctx)
}

// Update 原子地执行一次读-改-写。fn 返回错误或 ctx 已取消时不落盘；
// 取消只在写入前生效，绝不中断进行到一半的 Save。
func (l *Locked) Update(ctx context.Context, fn func(snap *Snapshot) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&snap); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.s.Save(ctx, snap)
}
