package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/internal/middleware"
	"yummy-backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetPhotos(c *fiber.Ctx) error
		AttachPhoto(c *fiber.Ctx) error
		SetPhotoVisibility(c *fiber.Ctx) error
		DetachPhoto(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		AddIngredient(c *fiber.Ctx) error
		AddIngredientGroup(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.OwnerID = middleware.Owner(c).String()

	created, err := h.recipeService.Create(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveRecipe, err)
	}
	res, err := h.recipeService.Summary(c.Context(), created)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

// GetRecipes lists public recipes of a category subtree.
func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := pagination(c)
	recipes, count, err := h.recipeService.ListByCategory(c.Context(), c.Query("category"), c.Query("order"), page, limit)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, paginated("recipes", recipes, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	page, limit := pagination(c)
	recipes, count, err := h.recipeService.ListByOwner(c.Context(), middleware.Owner(c), page, limit)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, paginated("recipes", recipes, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	res, err := h.recipeService.Detail(c.Context(), id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetPhotos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	r, err := h.recipeService.GetByID(c.Context(), id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetPhotos, err)
	}
	res, err := h.recipeService.OrderedPhotos(c.Context(), r)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetPhotos, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPhotos)
}

func (h *recipeHandler) AttachPhoto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(domain.AttachPhotoRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.AttachPhoto(c.Context(), id, *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedAttachPhoto, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAttachPhoto)
}

func (h *recipeHandler) SetPhotoVisibility(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	photoID, err := paramID(c, "photo_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(struct {
		IsVisible bool `json:"is_visible"`
	})
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.recipeService.SetPhotoVisibility(c.Context(), id, photoID, req.IsVisible); err != nil {
		return presenters.Failure(c, domain.MessageFailedAttachPhoto, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAttachPhoto)
}

func (h *recipeHandler) DetachPhoto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	photoID, err := paramID(c, "photo_id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}

	if err := h.recipeService.DetachPhoto(c.Context(), id, photoID); err != nil {
		return presenters.Failure(c, domain.MessageFailedDetachPhoto, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDetachPhoto)
}

func (h *recipeHandler) GetIngredients(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	r, err := h.recipeService.GetByID(c.Context(), id)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetIngredients, err)
	}
	res, err := h.recipeService.GroupedIngredients(c.Context(), r)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *recipeHandler) AddIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(domain.AddIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.AddIngredient(c.Context(), id, *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedAddIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *recipeHandler) AddIngredientGroup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(domain.AddIngredientGroupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.AddIngredientGroup(c.Context(), id, *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedAddIngredientGroup, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredientGroup)
}
