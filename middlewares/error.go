package middlewares

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"compliance-backend/apperr"
)

// NewErrorHandler centralizes error responses. Sentinel errors map to their
// status codes; everything unknown becomes a sanitized 500.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Fiber errors carry their own status code and message.
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
		}

		// Validation errors: 422 with per-field info.
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(map[string]string, len(ve))
			for _, f := range ve {
				out[f.Field()] = f.Tag()
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": "validation failed",
				"errors": out,
			})
		}

		switch {
		case errors.Is(err, apperr.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "could not validate credentials"})
		case errors.Is(err, apperr.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
		case errors.Is(err, apperr.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "conflict"})
		case errors.Is(err, apperr.ErrValidation):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "validation failed"})
		case apperr.IsUnavailable(err):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"detail": "service unavailable"})
		}

		log.Error("internal error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}
