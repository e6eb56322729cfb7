package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Item is one stored key of the postgres-backed storage.
type Item struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Item) TableName() string {
	return "session_items"
}

// GormStorage keeps items in a SQL table. Expired rows are invisible to reads
// and removed by PurgeExpired.
type GormStorage struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewGormStorage(db *gorm.DB, ttl time.Duration) *GormStorage {
	return &GormStorage{db: db, ttl: ttl, now: time.Now}
}

func (s *GormStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item Item
	err := s.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, s.now().UTC()).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return item.Value, true, nil
}

func (s *GormStorage) SetItem(ctx context.Context, key, value string) error {
	now := s.now().UTC()
	item := Item{
		Key:       key,
		Value:     value,
		ExpiresAt: now.Add(s.ttl),
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&item).Error
}

func (s *GormStorage) RemoveItem(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&Item{}).Error
}

func (s *GormStorage) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.now().UTC()).
		Delete(&Item{})
	return result.RowsAffected, result.Error
}
