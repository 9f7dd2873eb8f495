package dto

import (
	"time"

	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
)

type GroupCreateRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	FamilyID    *uuid.UUID `json:"family_id"`
}

type GroupUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// GroupAddUsersRequest maps user id to the role to upsert.
type GroupAddUsersRequest struct {
	Users map[uuid.UUID]string `json:"users"`
}

type GroupMember struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type GroupResponse struct {
	models.Group
	Members []GroupMember `json:"members"`
}
