package services_test

import (
	"testing"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyCreateBootstrapsGeneralGroup(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewFamilyService(db)
	alice := createUser(t, db, "alice")

	family, err := svc.Create("the smiths", alice.ID)
	require.NoError(t, err)

	var general models.Group
	require.NoError(t, db.First(&general, "family_id = ? AND name = ?", family.ID, "general").Error)
	assert.True(t, general.IsActive)

	var gm models.GroupMembership
	require.NoError(t, db.First(&gm, "user_id = ? AND group_id = ?", alice.ID, general.ID).Error)
	assert.Equal(t, models.MembershipRoleOwner, gm.Role)

	_, err = svc.Create("the smiths", alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Create("", alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestFamilyDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	families := services.NewFamilyService(db)
	tasks := newTaskService(db)
	alice := createUser(t, db, "alice")

	family, err := families.Create("the smiths", alice.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).Update("family_id", family.ID).Error)

	var general models.Group
	require.NoError(t, db.First(&general, "family_id = ?", family.ID).Error)

	task, err := tasks.Create(&dto.TaskCreateRequest{Title: "survives"})
	require.NoError(t, err)
	_, err = tasks.AssignToGroups(task.ID, []uuid.UUID{general.ID})
	require.NoError(t, err)

	require.NoError(t, families.Delete(family.ID))

	err = families.Delete(family.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Group{}).Where("family_id = ?", family.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.FamilyMembership{}).Where("family_id = ?", family.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The member keeps their account; the pointer is cleared.
	var got models.User
	require.NoError(t, db.First(&got, "id = ?", alice.ID).Error)
	assert.Nil(t, got.FamilyID)

	// Tasks outlive the family's groups.
	survivor, err := tasks.Get(task.ID, false)
	require.NoError(t, err)
	assert.Empty(t, survivor.AssignedGroups)
}
