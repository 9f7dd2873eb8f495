package services

import (
	"fmt"

	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) TaskSummary() (*dto.TaskSummaryResponse, error) {
	var summary dto.TaskSummaryResponse
	if err := s.db.Model(&models.Task{}).Count(&summary.TotalTasks).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	err := s.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusCompleted).
		Count(&summary.CompletedTasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return &summary, nil
}

// TasksForUser lists tasks directly assigned to the user.
func (s *ReportService) TasksForUser(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("assigned_user_id = ?", userID).Order("created_at").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}
	return tasks, nil
}

// TasksAssignedBy lists tasks the user handed to someone else.
func (s *ReportService) TasksAssignedBy(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("assigned_by_user_id = ?", userID).
		Where("assigned_user_id IS NOT NULL").
		Where("assigned_user_id <> ?", userID).
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

func (s *ReportService) TasksForGroup(groupID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Joins("JOIN task_groups ON task_groups.task_id = tasks.id").
		Where("task_groups.group_id = ?", groupID).
		Order("tasks.created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group tasks: %w", err)
	}
	return tasks, nil
}

// TasksForUserGroups resolves "tasks assigned to any group this user is a
// member of". A task in several of the user's groups appears once.
func (s *ReportService) TasksForUserGroups(userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Distinct("tasks.*").
		Joins("JOIN task_groups ON task_groups.task_id = tasks.id").
		Joins("JOIN group_memberships ON group_memberships.group_id = task_groups.group_id").
		Where("group_memberships.user_id = ?", userID).
		Order("tasks.created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for user groups: %w", err)
	}
	return tasks, nil
}
