package handlers

import (
	"log/slog"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps an error kind to an HTTP status. Internal errors are logged and
// masked.
func fail(c *fiber.Ctx, err error) error {
	var status int
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindInvalid:
		status = fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	default:
		status = fiber.StatusInternalServerError
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindInvalid, "invalid %s", param)
	}
	return id, nil
}

// actor returns the authenticated user id or an unauthorized error.
func actor(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := identity.UserID(c)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("unauthorized")
	}
	return id, nil
}
