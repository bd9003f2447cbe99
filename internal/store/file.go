package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"benefitup/internal/domain"
)

const (
	dbFile      = "db.json"
	sessionFile = "session.json"
)

// FileStore 本地文件后端：快照和会话各占一个 JSON 文件。
// 写入走 临时文件+rename，避免进程被杀时留下半截文件。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

func (f *FileStore) Load(_ context.Context) (Snapshot, error) {
	var snap Snapshot
	ok, err := f.readJSON(dbFile, &snap)
	if err != nil {
		return Snapshot{}, domain.NewStorageError("load", err)
	}
	if !ok {
		return Snapshot{}, nil // 槽位不存在 → 空状态
	}
	return snap, nil
}

func (f *FileStore) Save(_ context.Context, snap Snapshot) error {
	if err := f.writeJSON(dbFile, snap); err != nil {
		return domain.NewStorageError("save", err)
	}
	return nil
}

func (f *FileStore) LoadSession(_ context.Context) (*domain.Session, error) {
	var sess domain.Session
	ok, err := f.readJSON(sessionFile, &sess)
	if err != nil {
		return nil, domain.NewStorageError("load session", err)
	}
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (f *FileStore) SaveSession(_ context.Context, sess domain.Session) error {
	if err := f.writeJSON(sessionFile, sess); err != nil {
		return domain.NewStorageError("save session", err)
	}
	return nil
}

func (f *FileStore) ClearSession(_ context.Context) error {
	err := os.Remove(filepath.Join(f.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.NewStorageError("clear session", err)
	}
	return nil
}

func (f *FileStore) readJSON(name string, v any) (bool, error) {
	b, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(f.dir, name))
}
