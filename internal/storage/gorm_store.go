package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key-value pair.
type Entry struct {
	Key   string `gorm:"primaryKey;type:varchar(255)"`
	Value string `gorm:"type:text"`
}

// TableName overrides the GORM default pluralization.
func (Entry) TableName() string {
	return "entries"
}

// GormStore is a Store backed by a single entries table. It works against
// both SQLite and PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the entries table and returns a ready store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate entries table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the value under key, reporting false when the key is absent.
func (s *GormStore) Get(key string) (string, bool, error) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts the value under key, replacing any previous value.
func (s *GormStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set entry %s: %w", key, err)
	}
	return nil
}
