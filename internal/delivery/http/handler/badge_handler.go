package handler

import (
	"career-dash/internal/delivery/http/dto"
	"career-dash/internal/delivery/http/middleware"
	"career-dash/internal/pkg/response"
	"career-dash/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BadgeHandler struct {
	uc usecase.BadgeUsecase
}

type awardBadgeRequest struct {
	BadgeID uuid.UUID `json:"badge_id"`
}

type badgeOrderRequest struct {
	BadgeIDs []string `json:"badge_ids"`
}

func NewBadgeHandler(uc usecase.BadgeUsecase) *BadgeHandler {
	return &BadgeHandler{uc: uc}
}

func (h *BadgeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/badges", h.Catalog)

	grp := r.Group("/me/badges")
	grp.Get("/", h.List)
	grp.Post("/", h.Award)
	grp.Put("/order", h.SaveOrder)
	grp.Post("/move", h.Move)
	grp.Delete("/:id", h.Remove)
}

func (h *BadgeHandler) Catalog(c fiber.Ctx) error {
	items, err := h.uc.Catalog(c.Context())
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BadgeResponses(items))
}

func (h *BadgeHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BadgeItems(items))
}

func (h *BadgeHandler) Award(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req awardBadgeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.BadgeID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MsgRequiredFields, nil, nil)
	}

	ub, err := h.uc.Award(c.Context(), userID, req.BadgeID)
	if err != nil {
		return mapDashboardError(err)
	}
	order := 0
	if ub.DisplayOrder != nil {
		order = *ub.DisplayOrder
	}
	return response.Success(c, fiber.StatusCreated, "Badge earned", dto.NewUserBadgeResponse(ub, order))
}

func (h *BadgeHandler) Remove(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), userID, id); err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Badge removed.", nil)
}

func (h *BadgeHandler) SaveOrder(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req badgeOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	items, err := h.uc.SaveOrder(c.Context(), userID, req.BadgeIDs)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, usecase.BadgeOrderMessages.SuccessMessage, dto.BadgeItems(items))
}

func (h *BadgeHandler) Move(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req moveRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	items, moved, err := h.uc.Move(c.Context(), userID, req.DraggedID, req.TargetID)
	if err != nil {
		return mapDashboardError(err)
	}
	msg := response.MessageOK
	if moved {
		msg = usecase.BadgeOrderMessages.SuccessMessage
	}
	return response.Success(c, fiber.StatusOK, msg, dto.BadgeItems(items))
}
