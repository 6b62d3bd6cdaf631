package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift is a named working window, e.g. "Morning" 06:00-14:00. Times are
// stored as HH:MM strings; OEE math assumes a fixed 8-hour shift regardless.
type Shift struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	StartTime string    `gorm:"not null"`
	EndTime   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
