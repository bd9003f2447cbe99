package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"benefitup/internal/domain"
)

// RedisStore Redis 后端：快照和会话各占一个 key，value 为 JSON blob。
type RedisStore struct {
	RDB        *redis.Client
	Key        string // 快照 key，默认 benefitup:db
	SessionKey string // 会话 key，默认 benefitup:session
	sf         singleflight.Group
}

func NewRedisStore(addr, pass string, db int) *RedisStore {
	return &RedisStore{
		RDB:        redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Key:        "benefitup:db",
		SessionKey: "benefitup:session",
	}
}

func (r *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	// single flight 合并并发 Load，避免同 key 重复打 Redis
	v, err, _ := r.sf.Do(r.Key, func() (any, error) {
		b, err := r.RDB.Get(ctx, r.Key).Bytes()
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, nil
		}
		if err != nil {
			return Snapshot{}, domain.NewStorageError("load", err)
		}
		var snap Snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return Snapshot{}, domain.NewStorageError("load", err)
		}
		return snap, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (r *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return domain.NewStorageError("save", err)
	}
	if err := r.RDB.Set(ctx, r.Key, b, 0).Err(); err != nil {
		return domain.NewStorageError("save", err)
	}
	return nil
}

func (r *RedisStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	b, err := r.RDB.Get(ctx, r.SessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("load session", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, domain.NewStorageError("load session", err)
	}
	return &sess, nil
}

func (r *RedisStore) SaveSession(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return domain.NewStorageError("save session", err)
	}
	if err := r.RDB.Set(ctx, r.SessionKey, b, 0).Err(); err != nil {
		return domain.NewStorageError("save session", err)
	}
	return nil
}

func (r *RedisStore) ClearSession(ctx context.Context) error {
	if err := r.RDB.Del(ctx, r.SessionKey).Err(); err != nil {
		return domain.NewStorageError("clear session", err)
	}
	return nil
}
