package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

func (s *AchievementService) Create(req *dto.AchievementCreateRequest) (*models.Achievement, error) {
	if req.Name == "" {
		return nil, apperr.Invalid("achievement name is required")
	}

	var existing models.Achievement
	if err := s.db.First(&existing, "name = ?", req.Name).Error; err == nil {
		return nil, apperr.Newf(apperr.KindConflict, "achievement %q already exists", req.Name)
	}

	achievement := models.Achievement{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return &achievement, nil
}

func (s *AchievementService) Get(achievementID uuid.UUID) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := s.db.First(&achievement, "id = ?", achievementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("achievement not found")
		}
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return &achievement, nil
}

func (s *AchievementService) List() ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.Order("name").Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

func (s *AchievementService) Update(achievementID uuid.UUID, req *dto.AchievementUpdateRequest) (*models.Achievement, error) {
	achievement, err := s.Get(achievementID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return achievement, nil
	}

	if err := s.db.Model(achievement).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update achievement: %w", err)
	}
	return achievement, nil
}

func (s *AchievementService) Delete(achievementID uuid.UUID) error {
	achievement, err := s.Get(achievementID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("achievement_id = ?", achievementID).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		return tx.Delete(achievement).Error
	})
}

// ListForUser returns the achievements awarded to a user.
func (s *AchievementService) ListForUser(userID uuid.UUID) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.awarded_at").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}
	return achievements, nil
}

// Award grants an achievement to a user. Awarding is idempotent: a duplicate
// (user, achievement) pair is swallowed by the conflict clause, so a
// concurrent double-award is a successful no-op rather than an error.
func (s *AchievementService) Award(tx *gorm.DB, userID, achievementID uuid.UUID) error {
	award := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		AwardedAt:     time.Now().UTC(),
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&award).Error
}

// CheckTaskCompletion awards completion-count achievements for the user.
// A catalog that has not been seeded yet is tolerated as a silent no-op.
func (s *AchievementService) CheckTaskCompletion(tx *gorm.DB, userID uuid.UUID) error {
	var completed int64
	err := tx.Model(&models.Task{}).
		Where("assigned_user_id = ? AND status = ?", userID, models.TaskStatusCompleted).
		Count(&completed).Error
	if err != nil {
		return fmt.Errorf("failed to count completed tasks: %w", err)
	}
	if completed < 1 {
		return nil
	}

	var achievement models.Achievement
	err = tx.First(&achievement, "name = ?", models.FirstTaskAchievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up achievement: %w", err)
	}

	return s.Award(tx, userID, achievement.ID)
}
