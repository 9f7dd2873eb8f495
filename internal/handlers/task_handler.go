package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/identity"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.AssignedByUserID == nil {
		if actor, err := identity.UserID(c); err == nil {
			req.AssignedByUserID = &actor
		}
	}

	task, err := h.taskService.Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	includeArchived := c.QueryBool("include_archived", false)
	tasks, err := h.taskService.List(includeArchived, c.QueryInt("skip", 0), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.taskService.Get(taskID, c.QueryBool("include_archived", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.TaskUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.taskService.Update(taskID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.taskService.Delete(taskID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) Restore(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.taskService.Restore(taskID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) AssignToUser(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID, err := parseID(c, "user_id")
	if err != nil {
		return fail(c, err)
	}

	// An explicit assigner in the body is optional; the caller is the default.
	var req dto.TaskAssignUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}
	assignedBy := req.AssignedByUserID
	if assignedBy == uuid.Nil {
		actor, err := identity.UserID(c)
		if err != nil {
			return badRequest(c, "assigned_by_user_id is required")
		}
		assignedBy = actor
	}

	task, err := h.taskService.AssignToUser(taskID, userID, assignedBy)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) UnassignFromUser(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	userID, err := parseID(c, "user_id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.taskService.UnassignFromUser(taskID, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) AssignToGroups(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.TaskAssignGroupsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.taskService.AssignToGroups(taskID, req.GroupIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) UnassignFromGroup(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	groupID, err := parseID(c, "group_id")
	if err != nil {
		return fail(c, err)
	}

	task, err := h.taskService.UnassignFromGroup(taskID, groupID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(task)
}
