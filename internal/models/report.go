package models

import "gorm.io/gorm"

// Report is a user complaint about another matched user.
type Report struct {
	gorm.Model
	RoomID         string `gorm:"type:text;index"` // порожній, якщо скарга поза кімнатою
	ReporterID     string `gorm:"type:text;not null;index"`
	ReportedUserID string `gorm:"type:text;not null;index"`
	ReportType     string `gorm:"type:text;not null"` // "Low", "Medium", "Critical"
	Status         string `gorm:"type:text"`          // "new", "confirmed", "dismissed"
}
