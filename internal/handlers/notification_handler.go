package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	notifications, err := h.notificationService.ListForUser(actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(notifications)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.NotificationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == uuid.Nil {
		req.UserID = actorID
	}

	notification, err := h.notificationService.Create(req.UserID, req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}
	notificationID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	notification, err := h.notificationService.MarkRead(notificationID, actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(notification)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}
	notificationID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.notificationService.Delete(notificationID, actorID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
