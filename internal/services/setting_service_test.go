package services_test

import (
	"testing"

	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsLazyCreation(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingService(db)
	alice := createUser(t, db, "alice")

	setting, err := svc.GetOrCreate(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "light", setting.Theme)
	assert.True(t, setting.NotificationsEnabled)
	assert.JSONEq(t, "{}", string(setting.NotificationPrefs))

	// Second access returns the same row.
	again, err := svc.GetOrCreate(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, setting.ID, again.ID)
}

func TestSettingsUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewSettingService(db)
	alice := createUser(t, db, "alice")

	disabled := false
	updated, err := svc.Update(alice.ID, &dto.SettingUpdateRequest{
		Theme:                strPtr("dark"),
		NotificationsEnabled: &disabled,
		NotificationPrefs:    map[string]any{"task_completed": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Theme)
	assert.False(t, updated.NotificationsEnabled)

	got, err := svc.GetOrCreate(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.JSONEq(t, `{"task_completed":true}`, string(got.NotificationPrefs))
}
