package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/askboard/models"
)

// SQL keeps the corpus in one row of the kv_entries table.
type SQL struct {
	db  *gorm.DB
	key string
}

// NewSQL returns a SQL adapter. The kv_entries table must exist; see
// config.InitDatabase.
func NewSQL(db *gorm.DB, key string) *SQL {
	if key == "" {
		key = DefaultKey
	}
	return &SQL{db: db, key: key}
}

func (s *SQL) Load(ctx context.Context) ([]models.Question, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where("`key` = ?", s.key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Question{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	return Decode([]byte(entry.Value))
}

// Save upserts the row so concurrent first writes never hit a duplicate key.
func (s *SQL) Save(ctx context.Context, corpus []models.Question) error {
	b, err := Encode(corpus)
	if err != nil {
		return err
	}
	now := time.Now()
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": string(b), "updated_at": now}),
	}).Create(&models.KVEntry{Key: s.key, Value: string(b), CreatedAt: now, UpdatedAt: now}).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}
