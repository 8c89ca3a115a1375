package models

import "time"

// KVEntry is one row of the key-value table the SQL persister writes the
// serialized corpus into.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:longtext;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of gorm's pluralizer.
func (KVEntry) TableName() string {
	return "kv_entries"
}
