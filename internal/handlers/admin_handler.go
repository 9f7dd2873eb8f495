package handlers

import (
	"strconv"

	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/models"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	userService *services.UserService
	db          *gorm.DB
}

func NewAdminHandler(userService *services.UserService, db *gorm.DB) *AdminHandler {
	return &AdminHandler{userService: userService, db: db}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListWithRelations(c.QueryInt("skip", 0), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	user, err := h.userService.GetWithRelations(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.UserRoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateRole(userID, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// Logs returns recent system log rows, newest first. Optional filters:
// level, trace_id, limit (default 100, capped at 1000).
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 1000 {
		limit = 1000
	}

	query := h.db.Model(&models.SystemLog{}).Order("timestamp DESC").Limit(limit)
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}
	if traceID := c.Query("trace_id"); traceID != "" {
		query = query.Where("trace_id = ?", traceID)
	}

	var logs []models.SystemLog
	if err := query.Find(&logs).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(logs)
}
