package handlers

import (
	"errors"

	"devconnector/internal/services"
	"devconnector/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// fieldError is implemented by the typed service errors that carry per-field messages.
type fieldError interface {
	error
	Fields() map[string]string
}

// respondError maps a service error onto an HTTP status and JSON body.
func respondError(c *fiber.Ctx, message string, err error) error {
	var (
		verr     *services.ValidationError
		conflict *services.ConflictError
		notFound *services.NotFoundError
	)
	status := fiber.StatusInternalServerError
	var fe fieldError
	switch {
	case errors.As(err, &verr):
		status, fe = fiber.StatusBadRequest, verr
	case errors.As(err, &conflict):
		status, fe = fiber.StatusConflict, conflict
	case errors.As(err, &notFound):
		status, fe = fiber.StatusNotFound, notFound
	}

	if fe != nil {
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"errors":  fe.Fields(),
		})
	}

	logger.LogError(message, err, logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	})
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// badBody rejects a request body that could not be parsed.
func badBody(c *fiber.Ctx, err error) error {
	logrus.WithField("path", c.Path()).Debugf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// userID returns the authenticated caller set by middleware.AuthRequired.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
