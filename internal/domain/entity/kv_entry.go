package entity

import "time"

// KVEntry is one serialized aggregate in the relational key-value table
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}
