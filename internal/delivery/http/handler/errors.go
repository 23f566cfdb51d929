package handler

import (
	"errors"

	"career-dash/internal/delivery/http/middleware"
	"career-dash/internal/domain/application"
	"career-dash/internal/domain/skill"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/pkg/response"
	"career-dash/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail   = "Please enter a valid email"
	MsgReminderEmail  = "Please enter a valid reminder email"
	MsgSelectStatus   = "Please select a valid status before updating."
	MsgInvalidDate    = "Please enter dates as YYYY-MM-DD"
	MsgInvalidValue   = "Please select a valid option"
)

// mapDashboardError turns usecase and domain errors into the semantic
// response the widgets show as a toast.
func mapDashboardError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrMissingField), errors.Is(err, skill.ErrMissingRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgRequiredFields, nil, err)
	case errors.Is(err, application.ErrInvalidEmail):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidEmail, nil, err)
	case errors.Is(err, skill.ErrReminderEmail):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgReminderEmail, nil, err)
	case errors.Is(err, application.ErrStatusRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgSelectStatus, nil, err)
	case errors.Is(err, application.ErrInvalidStatus), errors.Is(err, skill.ErrInvalidValue):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidValue, nil, err)
	case errors.Is(err, skill.ErrUnknownField):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown field", nil, err)
	case errors.Is(err, dates.ErrInvalidDate):
		return middleware.NewAppError(fiber.StatusBadRequest, MsgInvalidDate, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrOrderBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Another save of this list is in progress.", nil, err)
	case errors.Is(err, usecase.ErrBadgeAlreadyEarned):
		return middleware.NewAppError(fiber.StatusConflict, "Badge already earned", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func pathID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return id, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return nil
}
