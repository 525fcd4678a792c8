package kvstore

import (
	"context"
	"errors"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore stores values as rows of the kv_entries table
func NewGormStore(db *gorm.DB) domainRepo.KeyValueStore {
	return &gormStore{db: db}
}

func (s *gormStore) Load(ctx context.Context, key string) (string, bool, error) {
	var row entity.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

func (s *gormStore) Save(ctx context.Context, key, value string) error {
	row := entity.KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
