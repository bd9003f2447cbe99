package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"benefitup/internal/domain"
)

// slotRow 单行 blob 表：每个槽位一行，整读整写
type slotRow struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "slots" }

// GormStore 数据库后端（mysql/postgres）。数据库只当 KV 用：
// 快照契约是整体覆盖的 blob，不做逐实体建表。
type GormStore struct {
	db         *gorm.DB
	Key        string
	SessionKey string
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, domain.NewStorageError("migrate", err)
	}
	return &GormStore{db: db, Key: "db", SessionKey: "session"}, nil
}

func (g *GormStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	ok, err := g.read(ctx, g.Key, &snap)
	if err != nil {
		return Snapshot{}, domain.NewStorageError("load", err)
	}
	if !ok {
		return Snapshot{}, nil
	}
	return snap, nil
}

func (g *GormStore) Save(ctx context.Context, snap Snapshot) error {
	if err := g.write(ctx, g.Key, snap); err != nil {
		return domain.NewStorageError("save", err)
	}
	return nil
}

func (g *GormStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	var sess domain.Session
	ok, err := g.read(ctx, g.SessionKey, &sess)
	if err != nil {
		return nil, domain.NewStorageError("load session", err)
	}
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (g *GormStore) SaveSession(ctx context.Context, sess domain.Session) error {
	if err := g.write(ctx, g.SessionKey, sess); err != nil {
		return domain.NewStorageError("save session", err)
	}
	return nil
}

func (g *GormStore) ClearSession(ctx context.Context) error {
	err := g.db.WithContext(ctx).Where("key = ?", g.SessionKey).Delete(&slotRow{}).Error
	if err != nil {
		return domain.NewStorageError("clear session", err)
	}
	return nil
}

func (g *GormStore) read(ctx context.Context, key string, v any) (bool, error) {
	var row slotRow
	err := g.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(row.Value, v); err != nil {
		return false, err
	}
	return true, nil
}

func (g *GormStore) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	row := slotRow{Key: key, Value: b, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
