package entities

import "time"

// KVEntry is one durable key/value pair (session flag and display name).
type KVEntry struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }
