package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/famtask/famtask-backend/internal/config"
	"github.com/famtask/famtask-backend/internal/database"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/seed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named shared-cache DB so GORM's connection pool
// sees the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:famtask_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		ResetTokenExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: string(hash),
		IsActive:       true,
		Status:         models.UserStatusActive,
		Role:           models.RoleUser,
		Locale:         "en-US",
		Timezone:       "UTC",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAchievements(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, seed.Run(db))
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }
