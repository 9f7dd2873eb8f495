package handlers

import (
	"github.com/famtask/famtask-backend/internal/dto"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FamilyHandler struct {
	familyService *services.FamilyService
}

func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	actorID, err := actor(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.FamilyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	family, err := h.familyService.Create(req.Name, actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(family)
}

func (h *FamilyHandler) Get(c *fiber.Ctx) error {
	familyID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	family, err := h.familyService.Get(familyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(family)
}

func (h *FamilyHandler) List(c *fiber.Ctx) error {
	families, err := h.familyService.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(families)
}

func (h *FamilyHandler) Delete(c *fiber.Ctx) error {
	familyID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.familyService.Delete(familyID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
