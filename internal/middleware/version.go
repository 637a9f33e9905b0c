package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const localAppVersion = "appVersion"

// VersionMiddleware stamps responses with the running build version and
// stores it in context for the page footer
func VersionMiddleware(version string) fiber.Handler {
	if version == "" {
		version = "dev"
	}
	return func(c *fiber.Ctx) error {
		c.Set("X-App-Version", version)
		c.Locals(localAppVersion, version)
		return c.Next()
	}
}

// AppVersion returns the version stored by VersionMiddleware
func AppVersion(c *fiber.Ctx) string {
	version, _ := c.Locals(localAppVersion).(string)
	return version
}
