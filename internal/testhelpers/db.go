// Package testhelpers holds fixtures shared by the package tests.
package testhelpers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/agsdb/internal/database"
	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:"), "error", 1)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given email
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := services.UpsertUserByEmail(db, email, "")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

// CreateProject makes a project owned by user and returns the owner membership
func CreateProject(t *testing.T, db *gorm.DB, user *models.User, name string) *models.UserProject {
	t.Helper()

	project, err := services.CreateProject(db, user.ID, name, "")
	if err != nil {
		t.Fatalf("Failed to create project %s: %v", name, err)
	}
	membership, err := services.GetUserProject(db, user.ID, project.ID)
	if err != nil {
		t.Fatalf("Failed to load membership: %v", err)
	}
	return membership
}
