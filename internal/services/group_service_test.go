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

func TestGroupAddUsersUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewGroupService(db)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")

	group, err := svc.Create(&dto.GroupCreateRequest{Name: "chores"}, owner.ID)
	require.NoError(t, err)

	resp, err := svc.AddUsers(group.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, models.MembershipRoleMember, resp.Members[0].Role)

	// Adding again with a new role updates the row instead of duplicating it.
	resp, err = svc.AddUsers(group.ID, map[uuid.UUID]string{alice.ID: models.MembershipRoleOwner})
	require.NoError(t, err)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, models.MembershipRoleOwner, resp.Members[0].Role)

	_, err = svc.AddUsers(group.ID, map[uuid.UUID]string{alice.ID: "boss"})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestGroupNameUniqueWithinFamily(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewGroupService(db)
	families := services.NewFamilyService(db)
	owner := createUser(t, db, "owner")

	smiths, err := families.Create("the smiths", owner.ID)
	require.NoError(t, err)
	jones, err := families.Create("the joneses", owner.ID)
	require.NoError(t, err)

	_, err = svc.Create(&dto.GroupCreateRequest{Name: "chores", FamilyID: &smiths.ID}, owner.ID)
	require.NoError(t, err)

	_, err = svc.Create(&dto.GroupCreateRequest{Name: "chores", FamilyID: &smiths.ID}, owner.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// The same name in another family is fine.
	other, err := svc.Create(&dto.GroupCreateRequest{Name: "chores", FamilyID: &jones.ID}, owner.ID)
	require.NoError(t, err)

	// Renaming into a sibling's name collides too.
	_, err = svc.Update(other.ID, &dto.GroupUpdateRequest{Name: strPtr("general")})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Renaming to your own current name is not a conflict.
	_, err = svc.Update(other.ID, &dto.GroupUpdateRequest{Name: strPtr("chores")})
	require.NoError(t, err)
}

func TestGroupRemoveUsersIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewGroupService(db)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")

	group, err := svc.Create(&dto.GroupCreateRequest{Name: "chores"}, owner.ID)
	require.NoError(t, err)

	_, err = svc.AddUsers(group.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)

	resp, err := svc.RemoveUsers(group.ID, []uuid.UUID{alice.ID})
	require.NoError(t, err)
	assert.Empty(t, resp.Members)

	// Removing a user who is not a member succeeds silently.
	resp, err = svc.RemoveUsers(group.ID, []uuid.UUID{alice.ID, uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, resp.Members)
}

func TestGroupSoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewGroupService(db)
	owner := createUser(t, db, "owner")

	group, err := svc.Create(&dto.GroupCreateRequest{Name: "seasonal"}, owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(group.ID, false))

	_, err = svc.Get(group.ID, true)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	inactive, err := svc.Get(group.ID, false)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)
}

func TestGroupHardDeletePreservesTasks(t *testing.T) {
	db := newTestDB(t)
	groups := services.NewGroupService(db)
	tasks := newTaskService(db)
	owner := createUser(t, db, "owner")

	group, err := groups.Create(&dto.GroupCreateRequest{Name: "doomed"}, owner.ID)
	require.NoError(t, err)
	_, err = groups.AddUsers(group.ID, map[uuid.UUID]string{owner.ID: models.MembershipRoleOwner})
	require.NoError(t, err)

	task, err := tasks.Create(&dto.TaskCreateRequest{Title: "survives"})
	require.NoError(t, err)
	_, err = tasks.AssignToGroups(task.ID, []uuid.UUID{group.ID})
	require.NoError(t, err)

	require.NoError(t, groups.Delete(group.ID, true))

	_, err = groups.Get(group.ID, false)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var memberships int64
	require.NoError(t, db.Model(&models.GroupMembership{}).Where("group_id = ?", group.ID).Count(&memberships).Error)
	assert.Zero(t, memberships)

	var associations int64
	require.NoError(t, db.Model(&models.TaskGroup{}).Where("group_id = ?", group.ID).Count(&associations).Error)
	assert.Zero(t, associations)

	// The task itself is untouched.
	got, err := tasks.Get(task.ID, false)
	require.NoError(t, err)
	assert.Empty(t, got.AssignedGroups)
}

func TestGroupListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewGroupService(db)
	owner := createUser(t, db, "owner")
	alice := createUser(t, db, "alice")

	g1, err := svc.Create(&dto.GroupCreateRequest{Name: "kitchen"}, owner.ID)
	require.NoError(t, err)
	g2, err := svc.Create(&dto.GroupCreateRequest{Name: "garden"}, owner.ID)
	require.NoError(t, err)
	_, err = svc.Create(&dto.GroupCreateRequest{Name: "unrelated"}, owner.ID)
	require.NoError(t, err)

	_, err = svc.AddUsers(g1.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)
	_, err = svc.AddUsers(g2.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)

	mine, err := svc.ListForUser(alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Deactivated groups drop out of the active-only view.
	require.NoError(t, svc.Delete(g2.ID, false))
	active, err := svc.ListForUser(alice.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, g1.ID, active[0].ID)
}
