package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/pkg/menu"
)

type (
	MenuHandler interface {
		CreateRecommendation(c *fiber.Ctx) error
		GetRecommendations(c *fiber.Ctx) error
		SetWeekMenu(c *fiber.Ctx) error
		GetDayMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		now         func() time.Time
	}
)

func NewMenuHandler(menuService menu.MenuService) MenuHandler {
	return &menuHandler{menuService: menuService, now: time.Now}
}

func (h *menuHandler) CreateRecommendation(c *fiber.Ctx) error {
	req := new(domain.CreateRecommendationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	rec, err := h.menuService.CreateRecommendation(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSaveRecommendation, err)
	}
	return presenters.SuccessResponse(c, rec, fiber.StatusCreated, domain.MessageSuccessSaveRecommendation)
}

func (h *menuHandler) GetRecommendations(c *fiber.Ctx) error {
	recs, err := h.menuService.ActualRecommendations(c.Context(), h.now(), c.QueryInt("limit", 0))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRecommendations, err)
	}
	res, err := h.menuService.RecommendationViews(c.Context(), recs)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRecommendations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendations)
}

func (h *menuHandler) SetWeekMenu(c *fiber.Ctx) error {
	req := new(domain.SetWeekMenuRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.menuService.SetWeekMenu(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedSetWeekMenu, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetWeekMenu)
}

// GetDayMenu answers with the bare day-menu document, the shape the menu
// widget consumes.
func (h *menuHandler) GetDayMenu(c *fiber.Ctx) error {
	doc, err := h.menuService.DayMenu(c.Context(), h.now())
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetDayMenu, err)
	}
	return c.Status(fiber.StatusOK).JSON(doc)
}
