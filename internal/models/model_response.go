package models

import (
	"encoding/json"
	"time"
)

// ModelResponse holds the parsed JSON result of one scan's model invocation.
// At most one row per scan in normal operation; the newest row wins on reads.
type ModelResponse struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ScanID    uint            `gorm:"index" json:"scan_id"`
	Response  json.RawMessage `gorm:"type:jsonb" json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

func (ModelResponse) TableName() string {
	return "openai_responses"
}
