package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kaard/entities"
	"kaard/pkg/session/repository"
)

type sqliteStore struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.Store { return &sqliteStore{db: db} }

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e entities.KVEntry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	e := entities.KVEntry{Name: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *sqliteStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("name IN ?", keys).Delete(&entities.KVEntry{}).Error
}
