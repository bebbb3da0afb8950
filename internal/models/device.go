package models

import (
	"encoding/json"
	"time"
)

// Device is created the first time a scan arrives from an unseen device and
// never mutated afterwards. The client-generated deviceId lives inside the
// DeviceInfo blob together with device type, OS and app version.
type Device struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	DeviceInfo json.RawMessage `gorm:"type:jsonb" json:"device_info"`
	UserID     *string         `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
}
