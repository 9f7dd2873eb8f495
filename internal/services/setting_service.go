package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// GetOrCreate returns the user's settings, creating the row with defaults on
// first access.
func (s *SettingService) GetOrCreate(userID uuid.UUID) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.First(&setting, "user_id = ?", userID).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	setting = models.Setting{
		ID:                   uuid.New(),
		UserID:               userID,
		Theme:                "light",
		NotificationsEnabled: true,
		NotificationPrefs:    datatypes.JSON([]byte("{}")),
	}
	if err := s.db.Create(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return &setting, nil
}

func (s *SettingService) Update(userID uuid.UUID, req *dto.SettingUpdateRequest) (*models.Setting, error) {
	setting, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if req.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *req.NotificationsEnabled
	}
	if req.NotificationPrefs != nil {
		b, err := json.Marshal(req.NotificationPrefs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification prefs: %w", err)
		}
		updates["notification_prefs"] = datatypes.JSON(b)
	}
	if len(updates) == 0 {
		return setting, nil
	}

	if err := s.db.Model(setting).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return setting, nil
}
