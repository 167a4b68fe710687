package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/pkg/category"
)

type (
	CategoryHandler interface {
		CreateCategory(c *fiber.Ctx) error
		UpdateCategory(c *fiber.Ctx) error
		GetRoots(c *fiber.Ctx) error
		GetByPath(c *fiber.Ctx) error
		GetChildren(c *fiber.Ctx) error
		GetDescendants(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
	}
)

func NewCategoryHandler(categoryService category.CategoryService) CategoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

func (h *categoryHandler) CreateCategory(c *fiber.Ctx) error {
	req := new(domain.CreateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.categoryService.Create(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedCreateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *categoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedParseID, err)
	}
	req := new(domain.UpdateCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.categoryService.Update(c.Context(), id, *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedUpdateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCategory)
}

func (h *categoryHandler) GetRoots(c *fiber.Ctx) error {
	roots, err := h.categoryService.GetRoots(c.Context())
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategories, err)
	}
	return h.list(c, roots)
}

func (h *categoryHandler) GetByPath(c *fiber.Ctx) error {
	cat, err := h.categoryService.GetByPath(c.Context(), strings.Trim(c.Params("*"), "/"))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategory, err)
	}
	res, err := h.categoryService.Detail(c.Context(), cat)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategory)
}

func (h *categoryHandler) GetChildren(c *fiber.Ctx) error {
	cat, err := h.load(c)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategories, err)
	}
	children, err := h.categoryService.GetChildren(c.Context(), cat)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategories, err)
	}
	return h.list(c, children)
}

func (h *categoryHandler) GetDescendants(c *fiber.Ctx) error {
	cat, err := h.load(c)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategories, err)
	}
	descendants, err := h.categoryService.GetDescendants(c.Context(), cat)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetCategories, err)
	}
	return h.list(c, descendants)
}

func (h *categoryHandler) load(c *fiber.Ctx) (*entities.Category, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	return h.categoryService.GetByID(c.Context(), id)
}

func (h *categoryHandler) list(c *fiber.Ctx, categories []*entities.Category) error {
	res := make([]domain.Category, 0, len(categories))
	for _, cat := range categories {
		detail, err := h.categoryService.Detail(c.Context(), cat)
		if err != nil {
			return presenters.Failure(c, domain.MessageFailedGetCategories, err)
		}
		res = append(res, detail)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}
