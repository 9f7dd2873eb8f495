package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Setting is one-to-one with User and created lazily on first access.
type Setting struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Theme                string         `gorm:"size:50;not null;default:'light'" json:"theme"`
	NotificationsEnabled bool           `gorm:"not null;default:true" json:"notifications_enabled"`
	NotificationPrefs    datatypes.JSON `json:"notification_prefs"`
	UpdatedAt            time.Time      `json:"updated_at"`
}
