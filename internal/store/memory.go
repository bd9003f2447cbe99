package store

import (
	"context"
	"sync"

	"benefitup/internal/domain"
)

// MemStore 纯内存后端：开发联调和测试用，进程退出即失
type MemStore struct {
	mu   sync.RWMutex
	snap Snapshot
	has  bool
	sess *domain.Session

	// FailLoad/FailSave 注入存储故障（测试用）
	FailLoad error
	FailSave error
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailLoad != nil {
		return Snapshot{}, domain.NewStorageError("load", m.FailLoad)
	}
	if !m.has {
		return Snapshot{}, nil
	}
	return m.snap.Clone(), nil
}

func (m *MemStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return domain.NewStorageError("save", m.FailSave)
	}
	m.snap = snap.Clone()
	m.has = true
	return nil
}

func (m *MemStore) LoadSession(_ context.Context) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailLoad != nil {
		return nil, domain.NewStorageError("load session", m.FailLoad)
	}
	if m.sess == nil {
		return nil, nil
	}
	s := *m.sess
	return &s, nil
}

func (m *MemStore) SaveSession(_ context.Context, sess domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return domain.NewStorageError("save session", m.FailSave)
	}
	m.sess = &sess
	return nil
}

func (m *MemStore) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
