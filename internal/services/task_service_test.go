package services_test

import (
	"testing"
	"time"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *services.TaskService {
	return services.NewTaskService(db, services.NewAchievementService(db), nil)
}

func TestCreateTaskValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	cases := []struct {
		name string
		req  dto.TaskCreateRequest
	}{
		{"empty title", dto.TaskCreateRequest{}},
		{"priority too low", dto.TaskCreateRequest{Title: "t", Priority: intPtr(0)}},
		{"priority too high", dto.TaskCreateRequest{Title: "t", Priority: intPtr(6)}},
		{"negative reward", dto.TaskCreateRequest{Title: "t", RewardPoints: intPtr(-1)}},
		{"invalid status", dto.TaskCreateRequest{Title: "t", Status: statusPtr("done")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(&tc.req)
			assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
		})
	}

	t.Run("past due date", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := svc.Create(&dto.TaskCreateRequest{Title: "t", DueDate: &past})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
	})

	t.Run("unknown assignee", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.Create(&dto.TaskCreateRequest{Title: "t", AssignedUserID: &missing})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestCreateTaskDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "wash dishes"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Equal(t, 1, task.Priority)
	assert.Equal(t, 0, task.RewardPoints)
	assert.Nil(t, task.CompletedAt)
}

func TestCreateTaskCompletedSetsTimestamp(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	task, err := svc.Create(&dto.TaskCreateRequest{
		Title:  "already done",
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
}

func TestCompletionTimestampFollowsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "chore"})
	require.NoError(t, err)

	completed, err := svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	// Leaving status untouched must not clear the timestamp.
	renamed, err := svc.Update(task.ID, &dto.TaskUpdateRequest{Title: strPtr("chore v2")})
	require.NoError(t, err)
	require.NotNil(t, renamed.CompletedAt)

	// A redundant completed update is not a fresh transition and must keep
	// the original timestamp.
	time.Sleep(10 * time.Millisecond)
	resent, err := svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, resent.CompletedAt)
	assert.True(t, resent.CompletedAt.Equal(*completed.CompletedAt))

	reopened, err := svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusInProgress),
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	cancelled, err := svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCancelled),
	})
	require.NoError(t, err)
	assert.Nil(t, cancelled.CompletedAt)
}

func TestCompletionInvariantAllTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	statuses := []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
		models.TaskStatusCancelled,
	}

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "walker"})
	require.NoError(t, err)

	for _, from := range statuses {
		for _, to := range statuses {
			_, err := svc.Update(task.ID, &dto.TaskUpdateRequest{Status: statusPtr(from)})
			require.NoError(t, err)
			got, err := svc.Update(task.ID, &dto.TaskUpdateRequest{Status: statusPtr(to)})
			require.NoError(t, err)

			if to == models.TaskStatusCompleted {
				assert.NotNilf(t, got.CompletedAt, "%s -> %s", from, to)
			} else {
				assert.Nilf(t, got.CompletedAt, "%s -> %s", from, to)
			}
		}
	}
}

func TestCompletionCreditsPointsAndAwardsOnce(t *testing.T) {
	db := newTestDB(t)
	seedAchievements(t, db)
	svc := newTaskService(db)
	user := createUser(t, db, "alice")

	task, err := svc.Create(&dto.TaskCreateRequest{
		Title:          "mow the lawn",
		RewardPoints:   intPtr(10),
		AssignedUserID: &user.ID,
	})
	require.NoError(t, err)

	_, err = svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 10, got.Points)

	var awards int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&awards).Error)
	assert.EqualValues(t, 1, awards)

	// Re-sending completed on an already completed task is not a fresh
	// completion and credits nothing.
	_, err = svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 10, got.Points)

	// Reopen and complete again: points accrue, the achievement does not.
	_, err = svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusPending),
	})
	require.NoError(t, err)
	_, err = svc.Update(task.ID, &dto.TaskUpdateRequest{
		Status: statusPtr(models.TaskStatusCompleted),
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, 20, got.Points)
	require.NoError(t, db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&awards).Error)
	assert.EqualValues(t, 1, awards)
}

func TestSoftDeleteVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "ephemeral"})
	require.NoError(t, err)
	keeper, err := svc.Create(&dto.TaskCreateRequest{Title: "keeper"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(task.ID))

	_, err = svc.Get(task.ID, false)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	archived, err := svc.Get(task.ID, true)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	visible, err := svc.List(false, 0, 0)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, keeper.ID, visible[0].ID)

	all, err := svc.List(true, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Deleting an already archived task reports not found.
	err = svc.Delete(task.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := svc.Create(&dto.TaskCreateRequest{Title: title})
		require.NoError(t, err)
	}

	page, err := svc.List(false, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Title)
	assert.Equal(t, "c", page[1].Title)

	// Zero values leave the listing unbounded.
	all, err := svc.List(false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestRestore(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "restorable"})
	require.NoError(t, err)

	// Restoring a live task is refused.
	_, err = svc.Restore(task.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.Delete(task.ID))

	restored, err := svc.Restore(task.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)

	again, err := svc.Get(task.ID, false)
	require.NoError(t, err)
	assert.Equal(t, task.ID, again.ID)
}

func TestUnassignFromUserMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "t", AssignedUserID: &alice.ID})
	require.NoError(t, err)

	_, err = svc.UnassignFromUser(task.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	cleared, err := svc.UnassignFromUser(task.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedUserID)
	assert.Nil(t, cleared.AssignedByUserID)

	// Unassigning an unassigned task also conflicts.
	_, err = svc.UnassignFromUser(task.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAssignToGroupsReplacesSet(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)
	groups := services.NewGroupService(db)
	owner := createUser(t, db, "owner")

	g1, err := groups.Create(&dto.GroupCreateRequest{Name: "kitchen"}, owner.ID)
	require.NoError(t, err)
	g2, err := groups.Create(&dto.GroupCreateRequest{Name: "garden"}, owner.ID)
	require.NoError(t, err)
	g3, err := groups.Create(&dto.GroupCreateRequest{Name: "garage"}, owner.ID)
	require.NoError(t, err)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "t"})
	require.NoError(t, err)

	resp, err := svc.AssignToGroups(task.ID, []uuid.UUID{g1.ID, g2.ID, g2.ID})
	require.NoError(t, err)
	assert.Len(t, resp.AssignedGroups, 2)

	// Replace, not union.
	resp, err = svc.AssignToGroups(task.ID, []uuid.UUID{g3.ID})
	require.NoError(t, err)
	require.Len(t, resp.AssignedGroups, 1)
	assert.Equal(t, g3.ID, resp.AssignedGroups[0].ID)

	// Unknown group fails the whole call and leaves the set untouched.
	_, err = svc.AssignToGroups(task.ID, []uuid.UUID{g1.ID, uuid.New()})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	current, err := svc.Get(task.ID, false)
	require.NoError(t, err)
	require.Len(t, current.AssignedGroups, 1)
	assert.Equal(t, g3.ID, current.AssignedGroups[0].ID)

	// Empty set clears all assignments.
	resp, err = svc.AssignToGroups(task.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.AssignedGroups)
}

func TestUnassignFromGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)
	groups := services.NewGroupService(db)
	owner := createUser(t, db, "owner")

	g1, err := groups.Create(&dto.GroupCreateRequest{Name: "kitchen"}, owner.ID)
	require.NoError(t, err)

	task, err := svc.Create(&dto.TaskCreateRequest{Title: "t"})
	require.NoError(t, err)

	_, err = svc.UnassignFromGroup(task.ID, g1.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.AssignToGroups(task.ID, []uuid.UUID{g1.ID})
	require.NoError(t, err)

	resp, err := svc.UnassignFromGroup(task.ID, g1.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.AssignedGroups)
}
