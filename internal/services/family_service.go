package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// Create makes a family together with its "general" group and the creator's
// owner memberships in both, as one atomic unit.
func (s *FamilyService) Create(name string, createdBy uuid.UUID) (*models.Family, error) {
	var family *models.Family
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		family, err = s.createInTx(tx, name, createdBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return family, nil
}

// CreateInTx is Create running inside a caller-owned transaction, used by
// registration so user + family + group commit together.
func (s *FamilyService) CreateInTx(tx *gorm.DB, name string, createdBy uuid.UUID) (*models.Family, error) {
	return s.createInTx(tx, name, createdBy)
}

func (s *FamilyService) createInTx(tx *gorm.DB, name string, createdBy uuid.UUID) (*models.Family, error) {
	if name == "" {
		return nil, apperr.Invalid("family name is required")
	}

	var existing models.Family
	if err := tx.First(&existing, "name = ?", name).Error; err == nil {
		return nil, apperr.Newf(apperr.KindConflict, "family %q already exists", name)
	}

	now := time.Now().UTC()
	family := models.Family{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: createdBy,
	}
	if err := tx.Create(&family).Error; err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	description := "Default group"
	general := models.Group{
		ID:          uuid.New(),
		Name:        "general",
		Description: &description,
		CreatedBy:   createdBy,
		IsActive:    true,
		FamilyID:    &family.ID,
	}
	if err := tx.Create(&general).Error; err != nil {
		return nil, fmt.Errorf("failed to create default group: %w", err)
	}

	groupMembership := models.GroupMembership{
		UserID:   createdBy,
		GroupID:  general.ID,
		Role:     models.MembershipRoleOwner,
		JoinedAt: now,
	}
	if err := tx.Create(&groupMembership).Error; err != nil {
		return nil, fmt.Errorf("failed to create group membership: %w", err)
	}

	familyMembership := models.FamilyMembership{
		UserID:   createdBy,
		FamilyID: family.ID,
		Role:     models.MembershipRoleOwner,
		JoinedAt: now,
	}
	if err := tx.Create(&familyMembership).Error; err != nil {
		return nil, fmt.Errorf("failed to create family membership: %w", err)
	}

	return &family, nil
}

func (s *FamilyService) Get(familyID uuid.UUID) (*models.Family, error) {
	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("family not found")
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return &family, nil
}

func (s *FamilyService) List() ([]models.Family, error) {
	var families []models.Family
	if err := s.db.Order("created_at").Find(&families).Error; err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

// Delete removes a family and cascades its groups (and their association
// rows). Users keep their accounts; their family pointer is cleared.
func (s *FamilyService) Delete(familyID uuid.UUID) error {
	family, err := s.Get(familyID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uuid.UUID
		if err := tx.Model(&models.Group{}).Where("family_id = ?", familyID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.GroupMembership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&models.TaskGroup{}).Error; err != nil {
				return err
			}
			if err := tx.Where("family_id = ?", familyID).Delete(&models.Group{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("family_id = ?", familyID).Delete(&models.FamilyMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("family_id = ?", familyID).Update("family_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(family).Error
	})
}
