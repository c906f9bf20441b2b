// internal/services/testdb_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkpharma/asset-registry/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Plant{},
		&models.Area{},
		&models.AssetCategory{},
		&models.AssetSubCategory{},
		&models.ConsumableCategory{},
		&models.SpecificationCategory{},
		&models.Asset{},
		&models.AssetGeneralInfo{},
		&models.AssetComponent{},
		&models.AssetSpecification{},
		&models.AssetAttachment{},
		&models.ConnectLog{},
	)
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func intPtr(i int) *int { return &i }
