package repositories

import (
	"fmt"
	"log"
	"time"

	"property-verify/backend/internal/config"
	"property-verify/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database, configures pooling on the underlying sql.DB
// and retries with backoff while the database is still coming up.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if !cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	var db *gorm.DB
	var err error
	backoff := time.Second
	for attempt := 0; attempt < 5; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{Logger: gormLogger})
		if err == nil {
			break
		}
		log.Printf("database connect attempt %d failed: %v", attempt+1, err)
		time.Sleep(backoff)
		backoff *= 2
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	return db, nil
}

// Migrate creates the three collections backing the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AppUser{},
		&models.VerificationTask{},
		&models.TaskResult{},
	)
}

// Ping verifies connectivity on the underlying connection.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CollectionNames lists the tables present in the connected database.
func CollectionNames(db *gorm.DB) ([]string, error) {
	return db.Migrator().GetTables()
}
