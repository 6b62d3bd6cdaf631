package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductionRecord is one shift's output for one machine on one date.
type ProductionRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MachineID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ShiftID           uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Date              time.Time `gorm:"type:date;not null"`
	PlannedProduction int       `gorm:"not null;default:0"`
	ActualProduction  int       `gorm:"not null;default:0"`
	DowntimeMinutes   int       `gorm:"not null;default:0"`
	DowntimeReason    string
	DefectiveUnits    int       `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time

	Machine Machine `gorm:"foreignKey:MachineID"`
	Shift   Shift   `gorm:"foreignKey:ShiftID"`
}
