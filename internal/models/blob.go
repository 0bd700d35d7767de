package models

import "time"

// Blob is one row of the key-value table backing persistence
type Blob struct {
	Key       string `gorm:"column:blob_key;primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
