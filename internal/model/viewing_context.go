package model

import (
	"time"

	"github.com/google/uuid"
)

// ViewingContext is a per-account pointer to the dashboard currently being
// viewed. Absent row means the account views its own dashboard.
type ViewingContext struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ViewingAsID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time
}
