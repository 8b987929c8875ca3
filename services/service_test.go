package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"compliance-backend/database"
	"compliance-backend/models"
)

// setupTestDB opens a per-test in-memory store with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// seedUser creates an active user ready to authenticate with "password123".
func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		FullName: "Test User",
		Role:     models.RoleAccountant,
		Status:   models.StatusActive,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedClient creates a bare client row.
func seedClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client := models.Client{Name: name, Status: "active"}
	require.NoError(t, db.Create(&client).Error)
	return &client
}
