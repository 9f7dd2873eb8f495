package services

import (
	"errors"
	"fmt"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/scope"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.Scopes(scope.Paginate(offset, limit)).Order("created_at").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Update(userID uuid.UUID, req *dto.UserUpdateRequest) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		if taken, err := s.taken("username", *req.Username, userID); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("username already taken")
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		if taken, err := s.taken("email", *req.Email, userID); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("email already taken")
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, apperr.Invalid("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["hashed_password"] = string(hash)
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Locale != nil {
		updates["locale"] = *req.Locale
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.FamilyID != nil {
		updates["family_id"] = *req.FamilyID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateStatus(userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.UserStatusActive, models.UserStatusPending, models.UserStatusSuspended, models.UserStatusBanned:
	default:
		return nil, apperr.Newf(apperr.KindInvalid, "invalid user status %q", status)
	}
	return s.Update(userID, &dto.UserUpdateRequest{Status: &status})
}

func (s *UserService) UpdateRole(userID uuid.UUID, role models.UserRole) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RolePremium, models.RoleAdmin:
	default:
		return nil, apperr.Newf(apperr.KindInvalid, "invalid user role %q", role)
	}
	return s.Update(userID, &dto.UserUpdateRequest{Role: &role})
}

// Delete removes a user and everything it solely owns: notifications,
// settings, memberships, and tasks assigned to it. Tasks merely referencing
// the user as assigner keep the row with the reference cleared.
func (s *UserService) Delete(userID uuid.UUID) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Setting{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FamilyMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}

		var taskIDs []uuid.UUID
		if err := tx.Unscoped().Model(&models.Task{}).Where("assigned_user_id = ?", userID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskGroup{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		err := tx.Unscoped().Model(&models.Task{}).
			Where("assigned_by_user_id = ?", userID).
			Update("assigned_by_user_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}

// GetWithRelations materializes a user together with its owned records via
// explicit queries; no relation is fetched lazily.
func (s *UserService) GetWithRelations(userID uuid.UUID) (*dto.UserDetailResponse, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	detail := dto.UserDetailResponse{User: *user}

	if user.FamilyID != nil {
		var family models.Family
		if err := s.db.First(&family, "id = ?", *user.FamilyID).Error; err == nil {
			detail.Family = &family
		}
	}

	err = s.db.
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ?", userID).
		Order("groups.id").
		Find(&detail.Groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user groups: %w", err)
	}

	if err := s.db.Where("assigned_user_id = ?", userID).Order("created_at").Find(&detail.Tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load user tasks: %w", err)
	}

	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&detail.Notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to load user notifications: %w", err)
	}

	var setting models.Setting
	if err := s.db.First(&setting, "user_id = ?", userID).Error; err == nil {
		detail.Settings = &setting
	}

	return &detail, nil
}

func (s *UserService) ListWithRelations(offset, limit int) ([]dto.UserDetailResponse, error) {
	users, err := s.List(offset, limit)
	if err != nil {
		return nil, err
	}

	details := make([]dto.UserDetailResponse, 0, len(users))
	for _, u := range users {
		detail, err := s.GetWithRelations(u.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *UserService) taken(column, value string, excluding uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, excluding).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", column, err)
	}
	return count > 0, nil
}
