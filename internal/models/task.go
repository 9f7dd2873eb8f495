package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Priority    int        `gorm:"not null;default:1" json:"priority"`
	DueDate     *time.Time `json:"due_date"`

	RewardPoints int `gorm:"not null;default:0" json:"reward_points"`

	// Invariant: CompletedAt is set exactly when Status == completed.
	CompletedAt *time.Time `json:"completed_at"`

	AssignedUserID   *uuid.UUID `gorm:"type:uuid;index" json:"assigned_user_id"`
	AssignedByUserID *uuid.UUID `gorm:"type:uuid" json:"assigned_by_user_id"`

	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	IsArchived bool           `gorm:"not null;default:false" json:"is_archived"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TaskGroup links a task to a group it is assigned to. Composite primary
// key enforces at most one row per pair.
type TaskGroup struct {
	TaskID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
}

func (TaskGroup) TableName() string { return "task_groups" }
