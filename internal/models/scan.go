package models

import "time"

// Scan is one image-analysis event. It is created once the image upload has
// succeeded, so a scan can legitimately exist without a response row when the
// model call failed afterwards.
type Scan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DeviceID     *uint     `gorm:"index" json:"device_id"`
	UserID       *string   `json:"user_id"`
	ImageURL     string    `json:"image_url"`
	ChildAge     int       `json:"child_age"`
	ChildCountry string    `json:"child_country"`
	ImageSizeKB  int       `json:"image_size_kb"`
	CreatedAt    time.Time `json:"created_at"`
}
