package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benefitup/internal/domain"
)

func TestFileStoreLoadMissingSlotReturnsEmptyState(t *testing.T) {
	f := NewFileStore(t.TempDir())

	snap, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Claims)

	sess, err := f.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir)
	ctx := context.Background()

	in := Snapshot{
		Users: []domain.User{{
			ID: "u1", Email: "ada@lovelace.dev", Name: "ada",
			IsVerified: true, CreatedAt: time.Now().UTC().Truncate(time.Second),
		}},
		Claims: []domain.Claim{{ID: "c1", UserID: "u1", DealID: "d2", Status: domain.ClaimPending}},
	}
	require.NoError(t, f.Save(ctx, in))

	// 新实例重读，模拟进程重启
	out, err := NewFileStore(dir).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	f := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, f.Save(ctx, Snapshot{Users: []domain.User{{ID: "u1"}, {ID: "u2"}}}))
	require.NoError(t, f.Save(ctx, Snapshot{Users: []domain.User{{ID: "u3"}}}))

	snap, err := f.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1) // last-writer-wins，无合并
	assert.Equal(t, "u3", snap.Users[0].ID)
}

func TestFileStoreSessionSlot(t *testing.T) {
	f := NewFileStore(t.TempDir())
	ctx := context.Background()

	sess := domain.Session{User: domain.User{ID: "u1", Email: "a@b.c"}, Token: "tok-1"}
	require.NoError(t, f.SaveSession(ctx, sess))

	got, err := f.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess, *got)

	require.NoError(t, f.ClearSession(ctx))
	got, err = f.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 重复清除不报错
	assert.NoError(t, f.ClearSession(ctx))
}

func TestFileStoreCorruptFileSurfacesStorageError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dbFile), []byte("{not json"), 0o644))

	_, err := NewFileStore(dir).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir)
	require.NoError(t, f.Save(context.Background(), Snapshot{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, dbFile, e.Name())
	}
}
