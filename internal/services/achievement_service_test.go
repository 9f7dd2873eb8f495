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

func TestAchievementCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAchievementService(db)

	_, err := svc.Create(&dto.AchievementCreateRequest{Name: "Night Owl"})
	require.NoError(t, err)

	_, err = svc.Create(&dto.AchievementCreateRequest{Name: "Night Owl"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Create(&dto.AchievementCreateRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestAwardIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAchievementService(db)
	user := createUser(t, db, "alice")

	achievement, err := svc.Create(&dto.AchievementCreateRequest{Name: "Night Owl"})
	require.NoError(t, err)

	require.NoError(t, svc.Award(db, user.ID, achievement.ID))
	require.NoError(t, svc.Award(db, user.ID, achievement.ID))

	mine, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCheckTaskCompletionWithoutCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAchievementService(db)
	user := createUser(t, db, "alice")

	task := models.Task{
		ID:             uuid.New(),
		Title:          "done",
		Status:         models.TaskStatusCompleted,
		Priority:       1,
		AssignedUserID: &user.ID,
	}
	require.NoError(t, db.Create(&task).Error)

	// An unseeded catalog is tolerated.
	require.NoError(t, svc.CheckTaskCompletion(db, user.ID))

	mine, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestAchievementDeleteCascadesAwards(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAchievementService(db)
	user := createUser(t, db, "alice")

	achievement, err := svc.Create(&dto.AchievementCreateRequest{Name: "Night Owl"})
	require.NoError(t, err)
	require.NoError(t, svc.Award(db, user.ID, achievement.ID))

	require.NoError(t, svc.Delete(achievement.ID))

	var awards int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Count(&awards).Error)
	assert.Zero(t, awards)

	_, err = svc.Get(achievement.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
