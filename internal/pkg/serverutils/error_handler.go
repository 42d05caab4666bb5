package serverutils

import (
	"errors"

	"rockspec-notes/internal/pkg/apperr"
	"rockspec-notes/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// FieldErrors shapes the {errors: {field: message}} body the form routes
// promise.
func FieldErrors(field, message string) fiber.Map {
	return fiber.Map{
		"errors": fiber.Map{
			field: message,
		},
	}
}

// ErrorHandlerMiddleware maps service errors onto the HTTP contract.
// Validation and conflict errors become structured form errors, a missing
// session becomes a login redirect, and not-found (including ownership
// mismatches) is a bare 404. Anything else is a logged 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperr.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(FieldErrors(validationErr.Field, validationErr.Message))
		}

		var conflictErr *apperr.ConflictError
		if errors.As(err, &conflictErr) {
			return ctx.Status(fiber.StatusForbidden).
				JSON(FieldErrors(conflictErr.Field, conflictErr.Message))
		}

		if apperr.IsUnauthenticated(err) {
			return ctx.Redirect("/login?redirectTo="+ctx.Path(), fiber.StatusFound)
		}

		if apperr.IsNotFound(err) {
			return ctx.Status(fiber.StatusNotFound).SendString("Not Found")
		}

		log.Error("http", "unhandled request error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
}
