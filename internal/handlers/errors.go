package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agsdb/internal/auth"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/types"
	"github.com/localnerve/agsdb/internal/utils"
	"go.uber.org/zap"
)

// ErrorHandler renders errors as an HTML page for browsers and as the JSON
// error envelope for API clients
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()
		errorType := types.ErrorTypeUnknown

		var customErr *types.CustomError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &customErr):
			code = customErr.Code
			message = customErr.Message
			errorType = customErr.Type
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, services.ErrNotFound):
			code = fiber.StatusNotFound
			errorType = types.ErrorTypeNotFound
		case errors.Is(err, services.ErrInvalid):
			code = fiber.StatusBadRequest
			errorType = types.ErrorTypeValidation
		case errors.Is(err, auth.ErrInvalidState):
			code = fiber.StatusBadRequest
			errorType = types.ErrorTypeAuthState
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("url", c.OriginalURL()),
				zap.Error(err))
			message = "Internal Server Error"
		}

		if utils.WantsJSON(c) {
			return utils.ErrorResponse(c, message, code, errorType)
		}

		c.Status(code)
		if rerr := c.Render("error", page(c, "Error", fiber.Map{
			"Status":  code,
			"Message": message,
		})); rerr != nil {
			log.Warn("Failed to render error page", zap.Error(rerr))
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
