package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (h *AchievementHandler) List(c *fiber.Ctx) error {
	achievements, err := h.achievementService.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(achievements)
}

func (h *AchievementHandler) Mine(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	achievements, err := h.achievementService.ListForUser(actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(achievements)
}

func (h *AchievementHandler) Get(c *fiber.Ctx) error {
	achievementID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	achievement, err := h.achievementService.Get(achievementID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(achievement)
}

func (h *AchievementHandler) Create(c *fiber.Ctx) error {
	var req dto.AchievementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	achievement, err := h.achievementService.Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(achievement)
}

func (h *AchievementHandler) Update(c *fiber.Ctx) error {
	achievementID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.AchievementUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	achievement, err := h.achievementService.Update(achievementID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(achievement)
}

func (h *AchievementHandler) Delete(c *fiber.Ctx) error {
	achievementID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.achievementService.Delete(achievementID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
