package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a point of investigation (borehole, trial pit, probe) on a project
type Location struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:char(36);not null;index" json:"projectId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Latitude  float64   `gorm:"not null;default:0" json:"latitude"`
	Longitude float64   `gorm:"not null;default:0" json:"longitude"`
	Easting   float64   `gorm:"not null;default:0" json:"easting"`
	Northing  float64   `gorm:"not null;default:0" json:"northing"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Location
func (Location) TableName() string {
	return "locations"
}

// BeforeCreate assigns a UUID when none was given
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
