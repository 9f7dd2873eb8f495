package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.GroupCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	group, err := h.groupService.Create(&req, actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GroupHandler) List(c *fiber.Ctx) error {
	groups, err := h.groupService.List(c.QueryBool("active_only", true), c.QueryInt("skip", 0), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(groups)
}

func (h *GroupHandler) Get(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	group, err := h.groupService.Get(groupID, c.QueryBool("active_only", true))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) Update(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.GroupUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	group, err := h.groupService.Update(groupID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.groupService.Delete(groupID, c.QueryBool("hard", false)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *GroupHandler) AddUsers(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.GroupAddUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Users) == 0 {
		return badRequest(c, "At least one user is required")
	}

	group, err := h.groupService.AddUsers(groupID, req.Users)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) RemoveUser(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID, err := parseID(c, "user_id")
	if err != nil {
		return fail(c, err)
	}

	group, err := h.groupService.RemoveUsers(groupID, []uuid.UUID{userID})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

// MyGroups lists the groups the authenticated user belongs to.
func (h *GroupHandler) MyGroups(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	groups, err := h.groupService.ListForUser(actorID, c.QueryBool("active_only", true))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(groups)
}
