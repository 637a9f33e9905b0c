package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/agsdb/internal/auth"
	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Authenticator is the identity provider side of the login flow
type Authenticator interface {
	AuthURL(state string) string
	Profile(ctx context.Context, code string) (*auth.Profile, error)
}

// AuthHandler handles login, the OAuth callback and logout
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
	Auth     Authenticator
	Config   *config.Config
	Logger   *zap.Logger
}

// Login handles GET /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return c.Render("login", page(c, "Log in", nil))
}

// Begin handles GET and POST /auth: it stores a fresh state and redirects to Auth0
func (h *AuthHandler) Begin(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}

	state := auth.NewState()
	sess.Set(auth.SessionKeyState, state)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.Redirect(h.Auth.AuthURL(state), fiber.StatusSeeOther)
}

// Callback handles GET /callback
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}

	if err := auth.TakeState(sess, c.Query("state")); err != nil {
		_ = sess.Save()
		return err
	}

	if reason := c.Query("error"); reason != "" {
		_ = sess.Save()
		h.Logger.Info("Login refused by identity provider",
			zap.String("error", reason),
			zap.String("description", c.Query("error_description")))
		return unauthorized("Login was not completed: " + reason)
	}

	profile, err := h.Auth.Profile(c.UserContext(), c.Query("code"))
	if err != nil {
		_ = sess.Save()
		h.Logger.Warn("Login failed", zap.Error(err))
		if errors.Is(err, auth.ErrMissingEmail) {
			return unauthorized("Your account has no email address")
		}
		return unauthorized("Login failed")
	}

	user, err := services.UpsertUserByEmail(h.DB.WithContext(c.UserContext()), profile.Email, profile.Name)
	if err != nil {
		return err
	}

	if err := auth.SignIn(sess, user.ID, user.Email); err != nil {
		return err
	}

	h.Logger.Info("User signed in", zap.String("user_id", user.ID))
	return c.Redirect("/projects", fiber.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		return err
	}

	target, err := auth.BuildLogoutURL(h.Config.Auth0.LogoutURL, h.Config.Auth0.ClientID, h.Config.Auth0.ReturnToURL)
	if err != nil {
		return err
	}
	return c.Redirect(target, fiber.StatusFound)
}

func unauthorized(message string) error {
	return types.NewCustomError(fiber.StatusUnauthorized, types.ErrorTypeAuthLogin, message)
}
