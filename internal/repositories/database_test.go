package repositories_test

import (
	"testing"

	"property-verify/backend/internal/models"
	"property-verify/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	// One connection keeps the in-memory database visible to transactions.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestDatabaseConnection_Ping(t *testing.T) {
	db := setupTestDB(t)

	if err := repositories.Ping(db); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}
}

func TestMigrate_CollectionNames(t *testing.T) {
	db := setupTestDB(t)

	tables, err := repositories.CollectionNames(db)
	if err != nil {
		t.Fatalf("Failed to list tables: %v", err)
	}

	expected := map[string]bool{"appuser": false, "verificationtask": false, "taskresult": false}
	for _, table := range tables {
		if _, ok := expected[table]; ok {
			expected[table] = true
		}
	}

	for table, found := range expected {
		if !found {
			t.Errorf("Expected table %s after migration", table)
		}
	}
}

func TestDatabase_BasicOperations(t *testing.T) {
	db := setupTestDB(t)

	user := models.AppUser{
		ID:    uuid.Must(uuid.NewV4()),
		Name:  "demo",
		Email: "demo@example.com",
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	var loaded models.AppUser
	if err := db.Where("email = ?", "demo@example.com").First(&loaded).Error; err != nil {
		t.Fatalf("Failed to read user: %v", err)
	}

	if loaded.WalletBalanceCents != 0 {
		t.Errorf("Expected zero balance, got %d", loaded.WalletBalanceCents)
	}

	err := db.Model(&models.AppUser{}).Where("id = ?", user.ID).
		Update("wallet_balance_cents", gorm.Expr("wallet_balance_cents + ?", 30)).Error
	if err != nil {
		t.Fatalf("Failed to increment balance: %v", err)
	}

	if err := db.First(&loaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("Failed to re-read user: %v", err)
	}

	if loaded.WalletBalanceCents != 30 {
		t.Errorf("Expected balance 30 after increment, got %d", loaded.WalletBalanceCents)
	}
}

func TestDatabase_UniqueEmail(t *testing.T) {
	db := setupTestDB(t)

	first := models.AppUser{ID: uuid.Must(uuid.NewV4()), Name: "a", Email: "a@x.com"}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to insert first user: %v", err)
	}

	dup := models.AppUser{ID: uuid.Must(uuid.NewV4()), Name: "b", Email: "a@x.com"}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected unique constraint violation for duplicate email")
	}
}

func TestDatabase_Transactions(t *testing.T) {
	db := setupTestDB(t)

	tx := db.Begin()
	user := models.AppUser{ID: uuid.Must(uuid.NewV4()), Name: "tx", Email: "tx@x.com"}
	if err := tx.Create(&user).Error; err != nil {
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	tx.Rollback()

	var count int64
	db.Model(&models.AppUser{}).Where("email = ?", "tx@x.com").Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}

	tx = db.Begin()
	user.ID = uuid.Must(uuid.NewV4())
	if err := tx.Create(&user).Error; err != nil {
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	tx.Commit()

	db.Model(&models.AppUser{}).Where("email = ?", "tx@x.com").Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user after commit, got %d", count)
	}
}
