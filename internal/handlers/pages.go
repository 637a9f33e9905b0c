package handlers

import "github.com/gofiber/fiber/v2"

// Home handles GET /
func Home(c *fiber.Ctx) error {
	return c.Render("home", page(c, "", nil))
}
