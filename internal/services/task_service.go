package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/events"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	db           *gorm.DB
	achievements *AchievementService
	publisher    events.Publisher
}

func NewTaskService(db *gorm.DB, achievements *AchievementService, publisher events.Publisher) *TaskService {
	return &TaskService{db: db, achievements: achievements, publisher: publisher}
}

func (s *TaskService) Create(req *dto.TaskCreateRequest) (*dto.TaskResponse, error) {
	if req.Title == "" {
		return nil, apperr.Invalid("task title is required")
	}

	status := models.TaskStatusPending
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperr.Newf(apperr.KindInvalid, "invalid task status %q", *req.Status)
		}
		status = *req.Status
	}

	priority := 1
	if req.Priority != nil {
		priority = *req.Priority
	}
	if priority < 1 || priority > 5 {
		return nil, apperr.Invalid("priority must be between 1 and 5")
	}

	rewardPoints := 0
	if req.RewardPoints != nil {
		rewardPoints = *req.RewardPoints
	}
	if rewardPoints < 0 {
		return nil, apperr.Invalid("reward points cannot be negative")
	}

	if req.DueDate != nil && req.DueDate.Before(time.Now()) {
		return nil, apperr.Invalid("due date cannot be in the past")
	}

	if req.AssignedUserID != nil {
		if err := s.userExists(*req.AssignedUserID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		Status:           status,
		Priority:         priority,
		DueDate:          req.DueDate,
		RewardPoints:     rewardPoints,
		AssignedUserID:   req.AssignedUserID,
		AssignedByUserID: req.AssignedByUserID,
	}
	if status == models.TaskStatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &dto.TaskResponse{Task: task}, nil
}

// Get returns a task. Archived tasks are invisible unless includeArchived
// is set.
func (s *TaskService) Get(taskID uuid.UUID, includeArchived bool) (*dto.TaskResponse, error) {
	task, err := s.find(s.db, taskID, includeArchived)
	if err != nil {
		return nil, err
	}
	return s.withGroups(task)
}

func (s *TaskService) List(includeArchived bool, offset, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Scopes(scope.Visibility(includeArchived), scope.Paginate(offset, limit)).
		Order("created_at").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update. A fresh transition into completed credits
// the task's reward points to the assignee and runs the achievement check in
// the same transaction: a failure anywhere rolls back the status change too.
func (s *TaskService) Update(taskID uuid.UUID, req *dto.TaskUpdateRequest) (*dto.TaskResponse, error) {
	var updated *models.Task
	var freshCompletion bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		task, err := s.find(tx, taskID, false)
		if err != nil {
			return err
		}
		wasCompleted := task.Status == models.TaskStatusCompleted

		if req.Title != nil {
			if *req.Title == "" {
				return apperr.Invalid("task title cannot be empty")
			}
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = req.Description
		}
		if req.Priority != nil {
			if *req.Priority < 1 || *req.Priority > 5 {
				return apperr.Invalid("priority must be between 1 and 5")
			}
			task.Priority = *req.Priority
		}
		if req.DueDate != nil {
			task.DueDate = req.DueDate
		}
		if req.RewardPoints != nil {
			if *req.RewardPoints < 0 {
				return apperr.Invalid("reward points cannot be negative")
			}
			task.RewardPoints = *req.RewardPoints
		}
		if req.AssignedUserID != nil {
			task.AssignedUserID = req.AssignedUserID
		}
		if req.AssignedByUserID != nil {
			task.AssignedByUserID = req.AssignedByUserID
		}
		if req.Status != nil {
			if !req.Status.Valid() {
				return apperr.Newf(apperr.KindInvalid, "invalid task status %q", *req.Status)
			}
			task.Status = *req.Status
			if task.Status != models.TaskStatusCompleted {
				task.CompletedAt = nil
			} else if !wasCompleted {
				// A redundant completed update keeps the original timestamp.
				now := time.Now().UTC()
				task.CompletedAt = &now
			}
		}

		if err := tx.Save(task).Error; err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		freshCompletion = !wasCompleted && task.Status == models.TaskStatusCompleted
		if freshCompletion && task.AssignedUserID != nil {
			if err := s.creditPoints(tx, *task.AssignedUserID, task.RewardPoints); err != nil {
				return err
			}
			if err := s.achievements.CheckTaskCompletion(tx, *task.AssignedUserID); err != nil {
				return err
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if freshCompletion && updated.AssignedUserID != nil {
		s.publish(events.Event{
			Type:       events.TypeTaskCompleted,
			UserID:     updated.AssignedUserID.String(),
			TaskID:     updated.ID.String(),
			Points:     updated.RewardPoints,
			OccurredAt: time.Now().UTC(),
		})
	}

	return s.withGroups(updated)
}

// Delete soft-deletes a task; deletion is orthogonal to status.
func (s *TaskService) Delete(taskID uuid.UUID) error {
	result := s.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"deleted_at":  time.Now().UTC(),
			"is_archived": true,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("task not found")
	}
	return nil
}

// Restore clears the soft-delete pair. Only archived tasks can be restored.
func (s *TaskService) Restore(taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(s.db, taskID, true)
	if err != nil {
		return nil, err
	}
	if !task.DeletedAt.Valid {
		return nil, apperr.NotFound("task not found or not archived")
	}

	err = s.db.Unscoped().Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"deleted_at":  nil,
			"is_archived": false,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	task.DeletedAt = gorm.DeletedAt{}
	task.IsArchived = false
	return s.withGroups(task)
}

func (s *TaskService) AssignToUser(taskID, userID, assignedBy uuid.UUID) (*dto.TaskResponse, error) {
	if err := s.userExists(userID); err != nil {
		return nil, err
	}
	return s.Update(taskID, &dto.TaskUpdateRequest{
		AssignedUserID:   &userID,
		AssignedByUserID: &assignedBy,
	})
}

// UnassignFromUser clears the assignment, but only when userID matches the
// current assignee. A stale client unassigning someone else's task gets a
// conflict.
func (s *TaskService) UnassignFromUser(taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(s.db, taskID, false)
	if err != nil {
		return nil, err
	}
	if task.AssignedUserID == nil || *task.AssignedUserID != userID {
		return nil, apperr.Conflict("task is not assigned to this user")
	}

	err = s.db.Model(task).Updates(map[string]interface{}{
		"assigned_user_id":    nil,
		"assigned_by_user_id": nil,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to unassign task: %w", err)
	}

	task.AssignedUserID = nil
	task.AssignedByUserID = nil
	return s.withGroups(task)
}

// AssignToGroups replaces the task's entire group assignment set. Every
// requested group must exist; this is a set-replace, not a set-union.
func (s *TaskService) AssignToGroups(taskID uuid.UUID, groupIDs []uuid.UUID) (*dto.TaskResponse, error) {
	var task *models.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = s.find(tx, taskID, false)
		if err != nil {
			return err
		}

		unique := make([]uuid.UUID, 0, len(groupIDs))
		seen := make(map[uuid.UUID]struct{}, len(groupIDs))
		for _, id := range groupIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				unique = append(unique, id)
			}
		}

		if len(unique) > 0 {
			var count int64
			if err := tx.Model(&models.Group{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to verify groups: %w", err)
			}
			if count != int64(len(unique)) {
				return apperr.NotFound("one or more groups not found")
			}
		}

		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskGroup{}).Error; err != nil {
			return fmt.Errorf("failed to clear task groups: %w", err)
		}
		for _, gid := range unique {
			if err := tx.Create(&models.TaskGroup{TaskID: taskID, GroupID: gid}).Error; err != nil {
				return fmt.Errorf("failed to assign task to group: %w", err)
			}
		}

		return tx.Model(task).Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, err
	}

	return s.withGroups(task)
}

// UnassignFromGroup removes one group from the task's assigned set; it fails
// when the group is not currently assigned.
func (s *TaskService) UnassignFromGroup(taskID, groupID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(s.db, taskID, false)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("task_id = ? AND group_id = ?", taskID, groupID).Delete(&models.TaskGroup{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to unassign task from group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.Conflict("task is not assigned to this group")
	}

	return s.withGroups(task)
}

func (s *TaskService) find(tx *gorm.DB, taskID uuid.UUID, includeArchived bool) (*models.Task, error) {
	var task models.Task
	err := tx.Scopes(scope.Visibility(includeArchived)).First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "task %s not found", taskID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) userExists(userID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	if count == 0 {
		return apperr.Newf(apperr.KindNotFound, "user %s not found", userID)
	}
	return nil
}

func (s *TaskService) creditPoints(tx *gorm.DB, userID uuid.UUID, points int) error {
	if points == 0 {
		return nil
	}
	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to credit reward points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("assigned user not found")
	}
	return nil
}

func (s *TaskService) withGroups(task *models.Task) (*dto.TaskResponse, error) {
	var groups []models.Group
	err := s.db.
		Joins("JOIN task_groups ON task_groups.group_id = groups.id").
		Where("task_groups.task_id = ?", task.ID).
		Order("groups.id").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load task groups: %w", err)
	}
	return &dto.TaskResponse{Task: *task, AssignedGroups: groups}, nil
}

func (s *TaskService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		slog.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
