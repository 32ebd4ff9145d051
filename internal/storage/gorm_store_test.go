package storage_test

import (
	"testing"

	"jobmatch/internal/storage"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *storage.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	store, err := storage.NewGormStore(db)
	assert.NoError(t, err)
	return store
}

func TestGormStore_GetMissingKey(t *testing.T) {
	store := setupGormStore(t)

	value, found, err := store.Get("absent")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestGormStore_SetAndGet(t *testing.T) {
	store := setupGormStore(t)

	assert.NoError(t, store.Set("set_and_get", `{"hello":"world"}`))

	value, found, err := store.Get("set_and_get")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"hello":"world"}`, value)
}

func TestGormStore_SetOverwrites(t *testing.T) {
	store := setupGormStore(t)

	assert.NoError(t, store.Set("overwrite", "first"))
	assert.NoError(t, store.Set("overwrite", "second"))

	value, found, err := store.Get("overwrite")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", value)
}
