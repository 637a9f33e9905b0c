package auth

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLogoutURL(t *testing.T) {
	got, err := BuildLogoutURL("https://tenant.eu.auth0.com/v2/logout", "client-123", "http://localhost:3000")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "tenant.eu.auth0.com", u.Host)
	assert.Equal(t, "/v2/logout", u.Path)
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:3000", u.Query().Get("returnTo"))

	_, err = BuildLogoutURL("://bad", "c", "r")
	assert.Error(t, err)
}

func TestNewState(t *testing.T) {
	a, b := NewState(), NewState()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestProfileFromClaims(t *testing.T) {
	claims := func(body map[string]any) func(any) error {
		return func(v any) error {
			p := v.(*Profile)
			p.Subject, _ = body["sub"].(string)
			p.Email, _ = body["email"].(string)
			p.Name, _ = body["name"].(string)
			return nil
		}
	}

	profile, err := profileFromClaims(claims(map[string]any{
		"sub":   "auth0|1",
		"email": "engineer@example.com",
		"name":  "Site Engineer",
	}))
	require.NoError(t, err)
	assert.Equal(t, &Profile{Subject: "auth0|1", Email: "engineer@example.com", Name: "Site Engineer"}, profile)

	_, err = profileFromClaims(claims(map[string]any{"sub": "auth0|2"}))
	assert.ErrorIs(t, err, ErrMissingEmail)

	_, err = profileFromClaims(func(any) error { return errors.New("bad token") })
	assert.Error(t, err)
}
