package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/internal/middleware"
	"yummy-backend/pkg/shopping"
)

type (
	ShoppingHandler interface {
		CreateList(c *fiber.Ctx) error
		GetList(c *fiber.Ctx) error
		AddRecipe(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService) ShoppingHandler {
	return &shoppingHandler{shoppingService: shoppingService}
}

func (h *shoppingHandler) CreateList(c *fiber.Ctx) error {
	req := new(domain.CreateShoppingListRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.shoppingService.Create(c.Context(), middleware.Owner(c), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveShoppingList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveShoppingList)
}

func (h *shoppingHandler) GetList(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	res, err := h.shoppingService.Get(c.Context(), middleware.Owner(c), id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetShoppingList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingHandler) AddRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	recipeID, err := paramID(c, "recipe_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}

	owner := middleware.Owner(c)
	if _, err := h.shoppingService.AddRecipe(c.Context(), owner, id, recipeID); err != nil {
		return presenters.Failure(c, domain.MessageFailedAddRecipeToList, err)
	}
	res, err := h.shoppingService.Get(c.Context(), owner, id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetShoppingList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddRecipeToList)
}
