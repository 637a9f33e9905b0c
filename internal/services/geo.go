package services

import (
	"errors"

	"github.com/localnerve/agsdb/internal/models"
)

// ErrNoCoordinates is returned when a midpoint is requested for nothing
var ErrNoCoordinates = errors.New("no coordinates")

// Coordinates is a WGS84 position in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Midpoint returns the arithmetic mean of the points (not a great-circle centroid)
func Midpoint(points []Coordinates) (Coordinates, error) {
	if len(points) == 0 {
		return Coordinates{}, ErrNoCoordinates
	}

	var lat, lon float64
	for _, p := range points {
		lat += p.Latitude
		lon += p.Longitude
	}
	n := float64(len(points))
	return Coordinates{Latitude: lat / n, Longitude: lon / n}, nil
}

// LocationCoordinates projects locations onto their coordinates
func LocationCoordinates(locations []models.Location) []Coordinates {
	points := make([]Coordinates, len(locations))
	for i, l := range locations {
		points[i] = Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
	}
	return points
}
