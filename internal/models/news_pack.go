package models

import (
	"encoding/json"
	"time"
)

// NewsPack is one pre-generated daily news bundle keyed by
// (date, country, age band). Upserted by the offline generator and purged
// after 14 days.
type NewsPack struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Date      string          `gorm:"size:10;uniqueIndex:idx_kidnews_key" json:"date"`
	Country   string          `gorm:"size:16;uniqueIndex:idx_kidnews_key" json:"country"`
	AgeBand   string          `gorm:"size:8;uniqueIndex:idx_kidnews_key" json:"age_band"`
	Content   json.RawMessage `gorm:"type:jsonb" json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (NewsPack) TableName() string {
	return "daily_kidnews"
}
