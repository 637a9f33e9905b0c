package services

import (
	"fmt"
	"strings"

	"github.com/localnerve/agsdb/internal/models"
	"gorm.io/gorm"
)

// UpsertUserByEmail returns the user for email, creating it on first login.
// A non-empty name replaces the stored one.
func UpsertUserByEmail(db *gorm.DB, email, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalid)
	}

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where(models.User{Email: email})
		if name != "" {
			query = query.Assign(models.User{Name: name})
		}
		return query.FirstOrCreate(&user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

// GetUser retrieves a user by id
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case insensitively
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}
