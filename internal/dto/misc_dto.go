package dto

import "github.com/google/uuid"

type FamilyCreateRequest struct {
	Name string `json:"name"`
}

type SettingUpdateRequest struct {
	Theme                *string        `json:"theme"`
	NotificationsEnabled *bool          `json:"notifications_enabled"`
	NotificationPrefs    map[string]any `json:"notification_prefs"`
}

type NotificationCreateRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

type AchievementCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AchievementUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TaskSummaryResponse struct {
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}
