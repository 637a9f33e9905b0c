package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports service health
type HealthHandler struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

// Health handles GET /health
// @Summary Health check
// @Description Pings the database and the Auth0 tenant
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB.WithContext(c.UserContext()), h.Logger)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
