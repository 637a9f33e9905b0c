package services_test

import (
	"testing"

	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocationsSeedsDefault(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "owner@example.com")
	membership := testhelpers.CreateProject(t, db, user, "Quay")

	locations, err := services.GetLocations(db, membership.ProjectID)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, services.DefaultLocation.Name, locations[0].Name)
	assert.Equal(t, membership.ProjectID, locations[0].ProjectID)

	// A second call returns the stored row instead of seeding again
	again, err := services.GetLocations(db, membership.ProjectID)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, locations[0].ID, again[0].ID)
}

func TestGetLocationsExisting(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "owner@example.com")
	membership := testhelpers.CreateProject(t, db, user, "Quay")

	require.NoError(t, db.Create(&models.Location{
		ProjectID: membership.ProjectID,
		Name:      "BH01",
		Latitude:  51.5,
		Longitude: -0.12,
	}).Error)

	locations, err := services.GetLocations(db, membership.ProjectID)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "BH01", locations[0].Name)
}

func TestMidpoint(t *testing.T) {
	mid, err := services.Midpoint([]services.Coordinates{
		{Latitude: 0, Longitude: 0},
		{Latitude: 2, Longitude: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, services.Coordinates{Latitude: 1, Longitude: 1}, mid)

	mid, err = services.Midpoint([]services.Coordinates{{Latitude: 51.5, Longitude: -0.1}})
	require.NoError(t, err)
	assert.Equal(t, services.Coordinates{Latitude: 51.5, Longitude: -0.1}, mid)

	_, err = services.Midpoint(nil)
	assert.ErrorIs(t, err, services.ErrNoCoordinates)
}

func TestLocationCoordinates(t *testing.T) {
	points := services.LocationCoordinates([]models.Location{
		{Latitude: 1, Longitude: 2},
		{Latitude: 3, Longitude: 4},
	})
	assert.Equal(t, []services.Coordinates{{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: 4}}, points)
}
