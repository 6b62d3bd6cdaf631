package model

import (
	"time"

	"github.com/google/uuid"
)

// Invitation grants one account access to another account's dashboard.
// AdminID is the grantor (dashboard owner), InvitedID the grantee. At most
// one pending or accepted invitation should exist per (admin, invited) pair;
// the check happens at creation time, not as a database constraint.
type Invitation struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	AdminID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	InvitedID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Role       Role             `gorm:"not null;check:role IN ('viewer', 'operator', 'supervisor')"`
	Status     InvitationStatus `gorm:"not null;default:'pending'"`
	InvitedAt  time.Time        `gorm:"not null"`
	AcceptedAt *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time

	Admin   User `gorm:"foreignKey:AdminID"`
	Invited User `gorm:"foreignKey:InvitedID"`
}
