package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/localnerve/agsdb/internal/ags"
	"github.com/localnerve/agsdb/internal/models"
	"gorm.io/gorm"
)

// DefaultLocation is seeded into projects that have no locations yet so the map has a centre
var DefaultLocation = models.Location{
	Name:      "Default",
	Latitude:  51.5074,
	Longitude: -0.1278,
	Easting:   530034,
	Northing:  180381,
}

// GetLocations returns the project's locations, seeding DefaultLocation when there are none
func GetLocations(db *gorm.DB, projectID string) ([]models.Location, error) {
	var locations []models.Location
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Order("created_at, name").Find(&locations).Error; err != nil {
			return err
		}
		if len(locations) > 0 {
			return nil
		}

		seed := DefaultLocation
		seed.ProjectID = projectID
		if err := tx.Create(&seed).Error; err != nil {
			return err
		}
		locations = []models.Location{seed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// locationsFromGroup reads LOCA rows. Numbers that do not parse become 0.
func locationsFromGroup(projectID string, loca *ags.Group) []models.Location {
	locations := make([]models.Location, 0, loca.Len())
	for i := 0; i < loca.Len(); i++ {
		name := strings.TrimSpace(loca.Value("LOCA_ID", i))
		if name == "" {
			continue
		}
		locations = append(locations, models.Location{
			ProjectID: projectID,
			Name:      name,
			Latitude:  parseFloat(loca.Value("LOCA_LAT", i)),
			Longitude: parseFloat(loca.Value("LOCA_LON", i)),
			Easting:   parseFloat(loca.Value("LOCA_NATE", i)),
			Northing:  parseFloat(loca.Value("LOCA_NATN", i)),
		})
	}
	return locations
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// replaceLocations swaps the project's locations for the given set
func replaceLocations(tx *gorm.DB, projectID string, locations []models.Location) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.Location{}).Error; err != nil {
		return err
	}
	if len(locations) == 0 {
		return nil
	}
	return tx.Create(&locations).Error
}
