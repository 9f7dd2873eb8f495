package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MembershipRoleMember = "member"
	MembershipRoleOwner  = "owner"
)

// GroupMembership is an attributed user↔group relation. The composite
// primary key enforces at most one row per (user, group) pair; add is an
// upsert keyed on it.
type GroupMembership struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	GroupID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
	Role     string    `gorm:"size:50;not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

func (GroupMembership) TableName() string { return "group_memberships" }

// FamilyMembership records premium family participation, distinct from the
// single home family pointer on User.
type FamilyMembership struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FamilyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"family_id"`
	Role     string    `gorm:"size:50;not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

func (FamilyMembership) TableName() string { return "family_memberships" }
