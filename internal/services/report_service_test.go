package services_test

import (
	"testing"

	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskSummary(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	reports := services.NewReportService(db)

	_, err := tasks.Create(&dto.TaskCreateRequest{Title: "a"})
	require.NoError(t, err)
	_, err = tasks.Create(&dto.TaskCreateRequest{Title: "b", Status: statusPtr(models.TaskStatusCompleted)})
	require.NoError(t, err)
	archived, err := tasks.Create(&dto.TaskCreateRequest{Title: "c"})
	require.NoError(t, err)
	require.NoError(t, tasks.Delete(archived.ID))

	summary, err := reports.TaskSummary()
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalTasks)
	assert.EqualValues(t, 1, summary.CompletedTasks)
}

func TestTasksAssignedBy(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	reports := services.NewReportService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Delegated to someone else: counts.
	_, err := tasks.Create(&dto.TaskCreateRequest{
		Title: "delegated", AssignedUserID: &bob.ID, AssignedByUserID: &alice.ID,
	})
	require.NoError(t, err)

	// Self-assigned: does not count as delegation.
	_, err = tasks.Create(&dto.TaskCreateRequest{
		Title: "self", AssignedUserID: &alice.ID, AssignedByUserID: &alice.ID,
	})
	require.NoError(t, err)

	// Assigner set but no assignee: not a delegation either.
	_, err = tasks.Create(&dto.TaskCreateRequest{
		Title: "dangling", AssignedByUserID: &alice.ID,
	})
	require.NoError(t, err)

	delegated, err := reports.TasksAssignedBy(alice.ID)
	require.NoError(t, err)
	require.Len(t, delegated, 1)
	assert.Equal(t, "delegated", delegated[0].Title)
}

func TestTasksForUserGroups(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	groups := services.NewGroupService(db)
	reports := services.NewReportService(db)
	alice := createUser(t, db, "alice")

	g1, err := groups.Create(&dto.GroupCreateRequest{Name: "kitchen"}, alice.ID)
	require.NoError(t, err)
	g2, err := groups.Create(&dto.GroupCreateRequest{Name: "garden"}, alice.ID)
	require.NoError(t, err)
	_, err = groups.AddUsers(g1.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)
	_, err = groups.AddUsers(g2.ID, map[uuid.UUID]string{alice.ID: ""})
	require.NoError(t, err)

	// Assigned to both of alice's groups: must appear once, not twice.
	shared, err := tasks.Create(&dto.TaskCreateRequest{Title: "shared"})
	require.NoError(t, err)
	_, err = tasks.AssignToGroups(shared.ID, []uuid.UUID{g1.ID, g2.ID})
	require.NoError(t, err)

	other, err := groups.Create(&dto.GroupCreateRequest{Name: "other"}, alice.ID)
	require.NoError(t, err)
	unrelated, err := tasks.Create(&dto.TaskCreateRequest{Title: "unrelated"})
	require.NoError(t, err)
	_, err = tasks.AssignToGroups(unrelated.ID, []uuid.UUID{other.ID})
	require.NoError(t, err)

	got, err := reports.TasksForUserGroups(alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, shared.ID, got[0].ID)

	forGroup, err := reports.TasksForGroup(g1.ID)
	require.NoError(t, err)
	assert.Len(t, forGroup, 1)
}
