package services_test

import (
	"testing"

	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectOwner(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "owner@example.com")

	project, err := services.CreateProject(db, user.ID, "  Riverside Quay  ", "Phase 1")
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Riverside Quay", project.Name)

	var memberships []models.UserProject
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, user.ID, memberships[0].UserID)
	assert.Equal(t, models.RoleOwner, memberships[0].Role)
}

func TestCreateProjectRequiresName(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "owner@example.com")

	_, err := services.CreateProject(db, user.ID, "   ", "")
	assert.ErrorIs(t, err, services.ErrInvalid)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserProjectUnique(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "owner@example.com")
	membership := testhelpers.CreateProject(t, db, user, "Quay")

	err := db.Create(&models.UserProject{
		UserID:    user.ID,
		ProjectID: membership.ProjectID,
		Role:      models.RoleViewer,
	}).Error
	assert.Error(t, err)
}

func TestGetProjectsForUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	alice := testhelpers.CreateUser(t, db, "alice@example.com")
	bob := testhelpers.CreateUser(t, db, "bob@example.com")

	first := testhelpers.CreateProject(t, db, alice, "First")
	second := testhelpers.CreateProject(t, db, alice, "Second")
	testhelpers.CreateProject(t, db, bob, "Bob's")

	projects, err := services.GetProjectsForUser(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	ids := []string{projects[0].ID, projects[1].ID}
	assert.ElementsMatch(t, []string{first.ProjectID, second.ProjectID}, ids)

	projects, err = services.GetProjectsForUser(db, "nobody")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGetUserProject(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	alice := testhelpers.CreateUser(t, db, "alice@example.com")
	bob := testhelpers.CreateUser(t, db, "bob@example.com")
	membership := testhelpers.CreateProject(t, db, alice, "Quay")

	got, err := services.GetUserProject(db, alice.ID, membership.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Quay", got.Project.Name)
	assert.Equal(t, models.RoleOwner, got.Role)

	_, err = services.GetUserProject(db, bob.ID, membership.ProjectID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetProject(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	alice := testhelpers.CreateUser(t, db, "alice@example.com")
	membership := testhelpers.CreateProject(t, db, alice, "Quay")

	project, err := services.GetProject(db, membership.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Quay", project.Name)

	_, err = services.GetProject(db, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpsertUserByEmail(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	user, err := services.UpsertUserByEmail(db, "Site.Engineer@Example.com", "Sam")
	require.NoError(t, err)
	assert.Equal(t, "site.engineer@example.com", user.Email)
	assert.Equal(t, "Sam", user.Name)

	again, err := services.UpsertUserByEmail(db, "site.engineer@example.com", "Sam Jones")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "Sam Jones", again.Name)

	kept, err := services.UpsertUserByEmail(db, "site.engineer@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Sam Jones", kept.Name)

	_, err = services.UpsertUserByEmail(db, " ", "")
	assert.ErrorIs(t, err, services.ErrInvalid)

	got, err := services.GetUser(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	byEmail, err := services.GetUserByEmail(db, " SITE.engineer@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = services.GetUserByEmail(db, "nobody@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
