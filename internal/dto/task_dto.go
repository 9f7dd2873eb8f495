package dto

import (
	"time"

	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
)

type TaskCreateRequest struct {
	Title            string             `json:"title"`
	Description      *string            `json:"description"`
	Status           *models.TaskStatus `json:"status"`
	Priority         *int               `json:"priority"`
	DueDate          *time.Time         `json:"due_date"`
	RewardPoints     *int               `json:"reward_points"`
	AssignedUserID   *uuid.UUID         `json:"assigned_user_id"`
	AssignedByUserID *uuid.UUID         `json:"assigned_by_user_id"`
}

// TaskUpdateRequest carries a partial update; nil fields are left untouched.
type TaskUpdateRequest struct {
	Title            *string            `json:"title"`
	Description      *string            `json:"description"`
	Status           *models.TaskStatus `json:"status"`
	Priority         *int               `json:"priority"`
	DueDate          *time.Time         `json:"due_date"`
	RewardPoints     *int               `json:"reward_points"`
	AssignedUserID   *uuid.UUID         `json:"assigned_user_id"`
	AssignedByUserID *uuid.UUID         `json:"assigned_by_user_id"`
}

type TaskAssignUserRequest struct {
	AssignedByUserID uuid.UUID `json:"assigned_by_user_id"`
}

type TaskAssignGroupsRequest struct {
	GroupIDs []uuid.UUID `json:"group_ids"`
}

type TaskResponse struct {
	models.Task
	AssignedGroups []models.Group `json:"assigned_groups"`
}
