package models

import (
	"encoding/json"
	"time"
)

// QuizPack is one pre-generated quiz bundle keyed by (category, age band).
// Upserted by the offline generator; never expires.
type QuizPack struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Category  string          `gorm:"size:64;uniqueIndex:idx_quiz_key" json:"category"`
	AgeBand   string          `gorm:"size:8;uniqueIndex:idx_quiz_key" json:"age_band"`
	Content   json.RawMessage `gorm:"type:jsonb" json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (QuizPack) TableName() string {
	return "quiz_content"
}
