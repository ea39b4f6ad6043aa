package services_test

import (
	"testing"
	"time"

	"property-verify/backend/internal/models"
	"property-verify/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database visible to
	// transactions, which would otherwise get a fresh empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.Migrate(db))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, balance int64) models.AppUser {
	t.Helper()

	user := models.AppUser{
		ID:                 uuid.Must(uuid.NewV4()),
		Name:               email,
		Email:              email,
		WalletBalanceCents: balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPendingTask(t *testing.T, db *gorm.DB, title string, reward int64, lastAssigned *time.Time) models.VerificationTask {
	t.Helper()

	task := models.VerificationTask{
		ID:             uuid.Must(uuid.NewV4()),
		Title:          title,
		Price:          1200.0,
		Location:       "San Francisco, CA",
		ImageURL:       "https://example.com/listing.jpg",
		PropertyType:   "Apartment",
		RewardCents:    reward,
		Status:         models.TaskStatusPending,
		LastAssignedAt: lastAssigned,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
