package services

import (
	"fmt"
	"strings"

	"github.com/localnerve/agsdb/internal/models"
	"gorm.io/gorm"
)

// CreateProject creates a project and makes userID its owner in one transaction
func CreateProject(db *gorm.DB, userID, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", ErrInvalid)
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("project name is longer than 255 characters: %w", ErrInvalid)
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProject{
			UserID:    userID,
			ProjectID: project.ID,
			Role:      models.RoleOwner,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProjectsForUser returns the projects userID holds any role on, oldest membership first
func GetProjectsForUser(db *gorm.DB, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := db.
		Joins("JOIN user_projects ON user_projects.project_id = projects.id").
		Where("user_projects.user_id = ?", userID).
		Order("user_projects.created_at").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetUserProject returns the membership of userID on projectID, with the project loaded
func GetUserProject(db *gorm.DB, userID, projectID string) (*models.UserProject, error) {
	var membership models.UserProject
	err := db.Preload("Project").
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if err != nil {
		return nil, notFound(err, "project membership")
	}
	return &membership, nil
}

// GetProject retrieves a project by id
func GetProject(db *gorm.DB, projectID string) (*models.Project, error) {
	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		return nil, notFound(err, "project")
	}
	return &project, nil
}
