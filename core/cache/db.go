package cache

import (
	"encoding/json"
	"time"

	"purchase-manager/core/backend"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const userIDKey = "app_user_id"

// cacheEntry is the single key-value table backing DBStore.
type cacheEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

func (cacheEntry) TableName() string {
	return "purchase_cache"
}

// DBStore persists the cache in a relational database through gorm, so
// purchase state and the generated user identifier survive restarts.
type DBStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBStore migrates the cache table and returns a database-backed store.
func NewDBStore(db *gorm.DB, logger *zap.Logger) (*DBStore, error) {
	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, err
	}
	return &DBStore{db: db, logger: logger}, nil
}

func (s *DBStore) PurchaserInfo(userID string) *backend.PurchaserInfo {
	value := s.get("purchaser_info:" + userID)
	if value == nil {
		return nil
	}

	var info backend.PurchaserInfo
	if err := json.Unmarshal(value, &info); err != nil {
		s.logger.Warn("Discarding undecodable cached purchaser info",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return &info
}

func (s *DBStore) SetPurchaserInfo(userID string, info *backend.PurchaserInfo) {
	value, err := json.Marshal(info)
	if err != nil {
		s.logger.Warn("Failed to encode purchaser info for caching", zap.Error(err))
		return
	}
	s.set("purchaser_info:"+userID, value)
}

func (s *DBStore) UserID() string {
	return string(s.get(userIDKey))
}

func (s *DBStore) SetUserID(id string) {
	s.set(userIDKey, []byte(id))
}

func (s *DBStore) get(key string) []byte {
	var entry cacheEntry
	err := s.db.First(&entry, "`key` = ?", key).Error
	if err != nil {
		// Misses are empty results; anything else is logged and treated the same.
		if err != gorm.ErrRecordNotFound {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	return entry.Value
}

func (s *DBStore) set(key string, value []byte) {
	entry := cacheEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
