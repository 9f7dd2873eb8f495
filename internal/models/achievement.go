package models

import (
	"time"

	"github.com/google/uuid"
)

// FirstTaskAchievement is awarded when a user completes their first task.
// Evaluation is a no-op until the catalog is seeded with it.
const FirstTaskAchievement = "First Task Completed"

type Achievement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserAchievement records an award. Composite primary key makes awarding
// idempotent via insert-if-absent.
type UserAchievement struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AchievementID uuid.UUID `gorm:"type:uuid;primaryKey" json:"achievement_id"`
	AwardedAt     time.Time `gorm:"not null" json:"awarded_at"`
}

func (UserAchievement) TableName() string { return "user_achievements" }
