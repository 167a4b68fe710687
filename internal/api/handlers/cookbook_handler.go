package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/internal/middleware"
	"yummy-backend/pkg/cookbook"
)

type (
	CookbookHandler interface {
		GetCookbooks(c *fiber.Ctx) error
		CreateCookbook(c *fiber.Ctx) error
		GetCookbookRecipes(c *fiber.Ctx) error
		AddRecipe(c *fiber.Ctx) error
		RemoveRecipe(c *fiber.Ctx) error
		UpdateNote(c *fiber.Ctx) error
		GetRecipesCount(c *fiber.Ctx) error
		GetItemsForRecipe(c *fiber.Ctx) error
	}

	cookbookHandler struct {
		cookbookService cookbook.CookbookService
	}
)

func NewCookbookHandler(cookbookService cookbook.CookbookService) CookbookHandler {
	return &cookbookHandler{cookbookService: cookbookService}
}

func (h *cookbookHandler) GetCookbooks(c *fiber.Ctx) error {
	owner := middleware.Owner(c)
	if _, err := h.cookbookService.CreateDefault(c.Context(), owner); err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCookbooks, err)
	}
	res, err := h.cookbookService.ListByOwner(c.Context(), owner)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCookbooks, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCookbooks)
}

func (h *cookbookHandler) CreateCookbook(c *fiber.Ctx) error {
	req := new(domain.SaveCookbookRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.cookbookService.Create(c.Context(), middleware.Owner(c), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveCookbook, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveCookbook)
}

func (h *cookbookHandler) GetCookbookRecipes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	res, err := h.cookbookService.Items(c.Context(), middleware.Owner(c), id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCookbooks, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCookbooks)
}

func (h *cookbookHandler) AddRecipe(c *fiber.Ctx) error {
	req := new(domain.AddToCookbookRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.cookbookService.AddRecipe(c.Context(), middleware.Owner(c), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedAddToCookbook, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCookbook)
}

func (h *cookbookHandler) RemoveRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	recipeID, err := paramID(c, "recipe_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}

	if err := h.cookbookService.RemoveRecipe(c.Context(), middleware.Owner(c), id, recipeID); err != nil {
		return presenters.Failure(c, domain.MessageFailedRemoveFromBook, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveFromBook)
}

func (h *cookbookHandler) UpdateNote(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	recipeID, err := paramID(c, "recipe_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(domain.UpdateNoteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.cookbookService.UpdateNote(c.Context(), middleware.Owner(c), id, recipeID, *req); err != nil {
		return presenters.Failure(c, domain.MessageFailedUpdateNote, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateNote)
}

func (h *cookbookHandler) GetRecipesCount(c *fiber.Ctx) error {
	count, err := h.cookbookService.UserRecipesCount(c.Context(), middleware.Owner(c))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCookbooks, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipes": count}, fiber.StatusOK, domain.MessageSuccessGetCookbooks)
}

func (h *cookbookHandler) GetItemsForRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "recipe_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	res, err := h.cookbookService.UserItemsForRecipe(c.Context(), middleware.Owner(c), recipeID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCookbooks, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCookbooks)
}
