package services

import (
	"errors"
	"fmt"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(userID uuid.UUID, message string) (*models.Notification, error) {
	if message == "" {
		return nil, apperr.Invalid("notification message is required")
	}

	notification := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &notification, nil
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) (*models.Notification, error) {
	notification, err := s.getOwned(notificationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(notification).Update("is_read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return notification, nil
}

func (s *NotificationService) Delete(notificationID, userID uuid.UUID) error {
	notification, err := s.getOwned(notificationID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(notification).Error
}

func (s *NotificationService) getOwned(notificationID, userID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}
