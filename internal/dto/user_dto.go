package dto

import (
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
)

type UserUpdateRequest struct {
	Username  *string            `json:"username"`
	Email     *string            `json:"email"`
	Password  *string            `json:"password"`
	FirstName *string            `json:"first_name"`
	LastName  *string            `json:"last_name"`
	AvatarURL *string            `json:"avatar_url"`
	Locale    *string            `json:"locale"`
	Timezone  *string            `json:"timezone"`
	Level     *int               `json:"level"`
	IsActive  *bool              `json:"is_active"`
	FamilyID  *uuid.UUID         `json:"family_id"`
	Status    *models.UserStatus `json:"status"`
	Role      *models.UserRole   `json:"role"`
}

type UserStatusUpdateRequest struct {
	Status models.UserStatus `json:"status"`
}

type UserRoleUpdateRequest struct {
	Role models.UserRole `json:"role"`
}

// UserDetailResponse is the fully-materialized view of a user and its owned
// records; explicit queries fill it, there is no lazy loading to lean on.
type UserDetailResponse struct {
	models.User
	Family        *models.Family        `json:"family"`
	Groups        []models.Group        `json:"groups"`
	Tasks         []models.Task         `json:"tasks"`
	Notifications []models.Notification `json:"notifications"`
	Settings      *models.Setting       `json:"settings"`
}
