package models

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusPending   UserStatus = "PENDING"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusBanned    UserStatus = "BANNED"
)

type UserRole string

const (
	RoleUser    UserRole = "USER"
	RolePremium UserRole = "PREMIUM"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword string     `gorm:"not null" json:"-"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	Status         UserStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	Role           UserRole   `gorm:"size:20;not null;default:'USER'" json:"role"`

	FirstName *string `gorm:"size:150" json:"first_name"`
	LastName  *string `gorm:"size:150" json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
	Locale    string  `gorm:"size:20;not null;default:'en-US'" json:"locale"`
	Timezone  string  `gorm:"size:50;not null;default:'UTC'" json:"timezone"`

	Points int  `gorm:"not null;default:0" json:"points"`
	Level  *int `json:"level"`

	// Single "home" family; distinct from premium FamilyMembership rows.
	FamilyID *uuid.UUID `gorm:"type:uuid;index" json:"family_id"`

	ResetToken          *string    `gorm:"size:64;index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
