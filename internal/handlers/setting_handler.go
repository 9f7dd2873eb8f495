package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	settingService *services.SettingService
}

func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

func (h *SettingHandler) Get(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	setting, err := h.settingService.GetOrCreate(actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(setting)
}

func (h *SettingHandler) Update(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.SettingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	setting, err := h.settingService.Update(actorID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(setting)
}
