package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/agsdb/internal/auth"
	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/types"
	"gorm.io/gorm"
)

// Locals keys
const (
	localUserID      = "user_id"
	localEmail       = "email"
	localUserProject = "user_project"
)

// RequireUser redirects to /login unless the session holds a signed in user
func RequireUser(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := loadUser(c, store)
		if err != nil {
			return err
		}
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// OptionalUser loads the signed in user, if any, for public pages
func OptionalUser(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := loadUser(c, store); err != nil {
			return err
		}
		return c.Next()
	}
}

func loadUser(c *fiber.Ctx, store *session.Store) (bool, error) {
	sess, err := store.Get(c)
	if err != nil {
		return false, err
	}

	userID, email, ok := auth.SessionUser(sess)
	if !ok {
		return false, nil
	}

	c.Locals(localUserID, userID)
	c.Locals(localEmail, email)
	return true, nil
}

// RequireProjectMember loads the user's membership of :projectId and
// redirects to /projects when the user holds no role on it.
// It must run after RequireUser.
func RequireProjectMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID := c.Params("projectId")
		if projectID == "" {
			return types.NewCustomError(fiber.StatusBadRequest, types.ErrorTypeMembership, "Missing projectId")
		}

		membership, err := services.GetUserProject(db.WithContext(c.UserContext()), UserID(c), projectID)
		if errors.Is(err, services.ErrNotFound) {
			return c.Redirect("/projects", fiber.StatusFound)
		}
		if err != nil {
			return err
		}

		c.Locals(localUserProject, membership)
		return c.Next()
	}
}

// UserID returns the signed in user's id set by RequireUser
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// Email returns the signed in user's email set by RequireUser
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(localEmail).(string)
	return email
}

// UserProject returns the membership set by RequireProjectMember
func UserProject(c *fiber.Ctx) *models.UserProject {
	membership, _ := c.Locals(localUserProject).(*models.UserProject)
	return membership
}
