package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
)

// respondError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and surfaced as an opaque failure.
func respondError(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	}

	var aerr *apperrors.AuthorizationError
	if errors.As(err, &aerr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": aerr.Message,
		})
	}

	var nerr *apperrors.NotFoundError
	if errors.As(err, &nerr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": nerr.Error(),
		})
	}

	var cerr *apperrors.ConflictError
	if errors.As(err, &cerr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": cerr.Message,
		})
	}

	log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
