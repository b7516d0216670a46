package gormdb

import (
	"context"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvStore struct {
	db *gorm.DB
}

// NewKVStore stores entries in the kv_entries table, creating it when missing.
func NewKVStore(db *gorm.DB) (repository.KVStore, error) {
	if err := db.AutoMigrate(&model.KVEntryModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate kv_entries")
	}

	return &kvStore{db: db}, nil
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	var entry model.KVEntryModel
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", key)
	}

	return entry.Value, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	entry := model.KVEntryModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}

	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntryModel{}).Error; err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

// Close is a no-op; the connection pool belongs to the fx lifecycle.
func (s *kvStore) Close() error {
	return nil
}
