package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) Create(req *dto.GroupCreateRequest, createdBy uuid.UUID) (*models.Group, error) {
	if req.Name == "" {
		return nil, apperr.Invalid("group name is required")
	}
	if err := s.nameAvailable(req.Name, req.FamilyID, uuid.Nil); err != nil {
		return nil, err
	}

	group := models.Group{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   createdBy,
		IsActive:    true,
		FamilyID:    req.FamilyID,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

func (s *GroupService) Get(groupID uuid.UUID, activeOnly bool) (*models.Group, error) {
	query := s.db
	if activeOnly {
		query = query.Scopes(scope.ActiveOnly)
	}

	var group models.Group
	if err := query.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "group %s not found", groupID)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

func (s *GroupService) List(activeOnly bool, offset, limit int) ([]models.Group, error) {
	query := s.db.Scopes(scope.Paginate(offset, limit)).Order("id")
	if activeOnly {
		query = query.Scopes(scope.ActiveOnly)
	}

	var groups []models.Group
	if err := query.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Update(groupID uuid.UUID, req *dto.GroupUpdateRequest) (*models.Group, error) {
	group, err := s.Get(groupID, false)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.Invalid("group name cannot be empty")
		}
		if err := s.nameAvailable(*req.Name, group.FamilyID, groupID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return group, nil
	}

	if err := s.db.Model(group).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

// Delete deactivates a group, or removes it entirely with hard=true. A hard
// delete cascades membership and task association rows but never the tasks.
func (s *GroupService) Delete(groupID uuid.UUID, hard bool) error {
	group, err := s.Get(groupID, false)
	if err != nil {
		return err
	}

	if !hard {
		return s.db.Model(group).Update("is_active", false).Error
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.TaskGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}

// AddUsers upserts memberships keyed on (user_id, group_id): an existing row
// gets its role updated instead of erroring or duplicating.
func (s *GroupService) AddUsers(groupID uuid.UUID, userRoles map[uuid.UUID]string) (*dto.GroupResponse, error) {
	group, err := s.Get(groupID, false)
	if err != nil {
		return nil, err
	}

	for uid, role := range userRoles {
		if role == "" {
			role = models.MembershipRoleMember
		}
		if role != models.MembershipRoleMember && role != models.MembershipRoleOwner {
			return nil, apperr.Newf(apperr.KindInvalid, "invalid membership role %q", role)
		}

		membership := models.GroupMembership{
			UserID:   uid,
			GroupID:  groupID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"role": role}),
		}).Create(&membership).Error
		if err != nil {
			return nil, fmt.Errorf("failed to add user to group: %w", err)
		}
	}

	return s.withMembers(group)
}

// RemoveUsers deletes membership rows if present. Removing an absent
// membership is a no-op; the group's current state is returned either way.
func (s *GroupService) RemoveUsers(groupID uuid.UUID, userIDs []uuid.UUID) (*dto.GroupResponse, error) {
	group, err := s.Get(groupID, false)
	if err != nil {
		return nil, err
	}

	if len(userIDs) > 0 {
		err := s.db.Where("group_id = ? AND user_id IN ?", groupID, userIDs).
			Delete(&models.GroupMembership{}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to remove users from group: %w", err)
		}
	}

	return s.withMembers(group)
}

// ListForUser returns the groups the user holds a membership in, ordered by
// group id.
func (s *GroupService) ListForUser(userID uuid.UUID, activeOnly bool) ([]models.Group, error) {
	query := s.db.
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ?", userID)
	if activeOnly {
		query = query.Where("groups.is_active = ?", true)
	}

	var groups []models.Group
	if err := query.Order("groups.id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups for user: %w", err)
	}
	return groups, nil
}

// nameAvailable enforces name uniqueness within a family. Groups outside any
// family are unconstrained.
func (s *GroupService) nameAvailable(name string, familyID *uuid.UUID, excluding uuid.UUID) error {
	if familyID == nil {
		return nil
	}

	var count int64
	err := s.db.Model(&models.Group{}).
		Where("family_id = ? AND name = ? AND id <> ?", *familyID, name, excluding).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check group name uniqueness: %w", err)
	}
	if count > 0 {
		return apperr.Newf(apperr.KindConflict, "group %q already exists in this family", name)
	}
	return nil
}

func (s *GroupService) Members(groupID uuid.UUID) ([]dto.GroupMember, error) {
	var members []dto.GroupMember
	err := s.db.Model(&models.GroupMembership{}).
		Select("group_memberships.user_id, users.username, group_memberships.role, group_memberships.joined_at").
		Joins("JOIN users ON users.id = group_memberships.user_id").
		Where("group_memberships.group_id = ?", groupID).
		Order("group_memberships.joined_at").
		Scan(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

func (s *GroupService) withMembers(group *models.Group) (*dto.GroupResponse, error) {
	members, err := s.Members(group.ID)
	if err != nil {
		return nil, err
	}
	return &dto.GroupResponse{Group: *group, Members: members}, nil
}
