// Package auth signs users in through Auth0 and keeps them in a cookie session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/localnerve/agsdb/internal/config"
	"golang.org/x/oauth2"
)

// ErrMissingEmail is returned when the ID token carries no email claim
var ErrMissingEmail = errors.New("id token has no email claim")

// Profile is the part of the ID token the service uses
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Authenticator runs the OAuth2 authorization code flow against Auth0
type Authenticator struct {
	*oidc.Provider
	oauth2.Config
}

// New discovers the Auth0 tenant's OIDC configuration
func New(ctx context.Context, cfg config.Auth0Config) (*Authenticator, error) {
	issuer := "https://" + strings.TrimSuffix(strings.TrimPrefix(cfg.Domain, "https://"), "/") + "/"

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover %s: %w", issuer, err)
	}

	return &Authenticator{
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// AuthURL returns the Auth0 login URL carrying state
func (a *Authenticator) AuthURL(state string) string {
	return a.AuthCodeURL(state)
}

// VerifyIDToken verifies that an *oauth2.Token is a valid *oidc.IDToken.
func (a *Authenticator) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*oidc.IDToken, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	oidcConfig := &oidc.Config{
		ClientID: a.ClientID,
	}

	return a.Verifier(oidcConfig).Verify(ctx, rawIDToken)
}

// Profile exchanges the authorization code and returns the verified claims
func (a *Authenticator) Profile(ctx context.Context, code string) (*Profile, error) {
	token, err := a.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	idToken, err := a.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	return profileFromClaims(idToken.Claims)
}

func profileFromClaims(claims func(any) error) (*Profile, error) {
	var profile Profile
	if err := claims(&profile); err != nil {
		return nil, fmt.Errorf("failed to read claims: %w", err)
	}
	if strings.TrimSpace(profile.Email) == "" {
		return nil, ErrMissingEmail
	}
	return &profile, nil
}

// NewState returns a fresh OAuth state value
func NewState() string {
	return uuid.NewString()
}

// BuildLogoutURL appends client_id and returnTo to the Auth0 logout endpoint
func BuildLogoutURL(logoutURL, clientID, returnTo string) (string, error) {
	u, err := url.Parse(logoutURL)
	if err != nil {
		return "", fmt.Errorf("invalid AUTH0_LOGOUT_URL: %w", err)
	}

	q := u.Query()
	q.Set("client_id", clientID)
	q.Set("returnTo", returnTo)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
