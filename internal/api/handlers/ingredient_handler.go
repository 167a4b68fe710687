package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/pkg/ingredient"
)

type (
	IngredientHandler interface {
		GetNames(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		SaveConversion(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandler{ingredientService: ingredientService}
}

func (h *ingredientHandler) GetNames(c *fiber.Ctx) error {
	res, err := h.ingredientService.ApprovedNames(c.Context())
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetIngredientNames, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredientNames)
}

func (h *ingredientHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.CreateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.ingredientService.Create(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedCreateIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *ingredientHandler) SaveConversion(c *fiber.Ctx) error {
	req := new(domain.SaveConversionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.ingredientService.SaveConversion(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveConversion, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveConversion)
}
