package seed

import (
	"log/slog"

	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

// Run inserts the baseline achievement catalog. Safe to call repeatedly:
// rows are matched on the unique name and left untouched when present.
func Run(db *gorm.DB) error {
	achievements := []models.Achievement{
		{Name: models.FirstTaskAchievement, Description: strPtr("Complete your first task")},
		{Name: "Task Streak", Description: strPtr("Complete tasks five days in a row")},
		{Name: "Helping Hand", Description: strPtr("Complete a task assigned by someone else")},
		{Name: "Family Founder", Description: strPtr("Create a family")},
	}

	for i := range achievements {
		achievements[i].ID = uuid.New()
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&achievements[i])
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			slog.Info("seeded achievement", "name", achievements[i].Name)
		}
	}
	return nil
}
