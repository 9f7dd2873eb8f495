package models

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null;uniqueIndex:idx_groups_family_name" json:"name"`
	Description *string    `json:"description"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	FamilyID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_groups_family_name" json:"family_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
