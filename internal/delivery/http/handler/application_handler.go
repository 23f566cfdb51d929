package handler

import (
	"strconv"

	"career-dash/internal/delivery/http/dto"
	"career-dash/internal/delivery/http/middleware"
	"career-dash/internal/domain/application"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/pkg/response"
	"career-dash/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc        usecase.ApplicationUsecase
	reminders usecase.ReminderUsecase
}

type createApplicationRequest struct {
	Name            string `json:"name"`
	StudentName     string `json:"student_name"`
	CompanyName     string `json:"company_name"`
	Email           string `json:"email"`
	RoleApplied     string `json:"role_applied"`
	CurrentStatus   string `json:"current_status"`
	Note            string `json:"note"`
	LastDateToApply string `json:"last_date_to_apply"`
	AppliedOn       string `json:"applied_on"`
	Applied         bool   `json:"applied"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, reminders usecase.ReminderUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, reminders: reminders}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/applications")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/closing", h.Closing)
	grp.Patch("/:id/status", h.UpdateStatus)
	grp.Delete("/:id", h.Delete)
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplicationResponses(items))
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req createApplicationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := req.toApplication()
	if err != nil {
		return mapDashboardError(err)
	}

	created, err := h.uc.Create(c.Context(), userID, a)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.NewApplicationResponse(created))
}

func (req createApplicationRequest) toApplication() (application.Application, error) {
	status, err := application.ParseStatus(req.CurrentStatus)
	if err != nil {
		return application.Application{}, err
	}
	last, err := dates.ParseOptional(req.LastDateToApply)
	if err != nil {
		return application.Application{}, err
	}
	appliedOn, err := dates.ParseOptional(req.AppliedOn)
	if err != nil {
		return application.Application{}, err
	}
	return application.Application{
		Name:            req.Name,
		StudentName:     req.StudentName,
		CompanyName:     req.CompanyName,
		Email:           req.Email,
		RoleApplied:     req.RoleApplied,
		Status:          status,
		Note:            req.Note,
		LastDateToApply: last,
		AppliedOn:       appliedOn,
		Applied:         req.Applied,
	}, nil
}

func (h *ApplicationHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Record deleted", nil)
}

// Closing lists applications whose deadline falls within ?days= days.
// Missing or unparsable values use the default window.
func (h *ApplicationHandler) Closing(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	days, _ := strconv.Atoi(c.Query("days"))
	items, err := h.reminders.ListClosing(c.Context(), userID, days)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplicationResponses(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.reminders.UpdateStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated successfully.", dto.NewApplicationResponse(updated))
}
