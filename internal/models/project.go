package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the access a user has on a project
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Project is a site investigation holding AGS data
type Project struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserProjects []UserProject `gorm:"foreignKey:ProjectID"`
	Locations    []Location    `gorm:"foreignKey:ProjectID"`
}

// UserProject links a user to a project with a role.
// A user holds at most one role per project.
type UserProject struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	UserID    string `gorm:"type:char(36);not null;index:idx_user_project,unique"`
	ProjectID string `gorm:"type:char(36);not null;index:idx_user_project,unique"`
	Role      Role   `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	User      User    `gorm:"foreignKey:UserID"`
	Project   Project `gorm:"foreignKey:ProjectID"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName overrides the table name for UserProject
func (UserProject) TableName() string {
	return "user_projects"
}

// BeforeCreate assigns a UUID when none was given
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID when none was given
func (up *UserProject) BeforeCreate(tx *gorm.DB) error {
	if up.ID == "" {
		up.ID = uuid.NewString()
	}
	return nil
}
