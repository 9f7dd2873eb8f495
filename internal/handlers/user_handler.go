package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.QueryInt("skip", 0), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	user, err := h.userService.GetWithRelations(actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UserStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateStatus(userID, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.userService.Delete(userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
