package handlers

import (
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) TaskSummary(c *fiber.Ctx) error {
	summary, err := h.reportService.TaskSummary()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

func (h *ReportHandler) TasksForUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	tasks, err := h.reportService.TasksForUser(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

func (h *ReportHandler) TasksAssignedBy(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	tasks, err := h.reportService.TasksAssignedBy(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

func (h *ReportHandler) TasksForGroup(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	tasks, err := h.reportService.TasksForGroup(groupID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}

func (h *ReportHandler) TasksForUserGroups(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	tasks, err := h.reportService.TasksForUserGroups(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tasks)
}
