package gormdb

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestKVStore(t *testing.T) repository.KVStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// Each connection of an in-memory database sees its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := NewKVStore(db)
	require.NoError(t, err)

	return store
}

func TestKVStore_SetGetDelete(t *testing.T) {
	store := newTestKVStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "clients/a/cart")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "clients/a/cart", `[]`))
	require.NoError(t, store.Set(ctx, "clients/a/cart", `[{"qty":1}]`))

	value, err := store.Get(ctx, "clients/a/cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"qty":1}]`, value)

	require.NoError(t, store.Delete(ctx, "clients/a/cart"))
	require.NoError(t, store.Delete(ctx, "clients/a/cart"))

	_, err = store.Get(ctx, "clients/a/cart")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}
