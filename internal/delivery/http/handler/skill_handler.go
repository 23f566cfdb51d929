package handler

import (
	"career-dash/internal/delivery/http/dto"
	"career-dash/internal/delivery/http/middleware"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/pkg/response"
	"career-dash/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	skills     usecase.SkillUsecase
	updates    usecase.SkillUpdateUsecase
	priorities usecase.SkillPriorityUsecase
}

type createSkillRequest struct {
	Name              string `json:"name"`
	SkillType         string `json:"skill_type"`
	ProficiencyLevel  string `json:"proficiency_level"`
	CompletionStatus  string `json:"completion_status"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	ReasonToLearn     string `json:"reason_to_learn"`
	ReminderNeeded    bool   `json:"reminder_needed"`
	ReminderFrequency string `json:"reminder_frequency"`
	NextReminderDate  string `json:"next_reminder_date"`
	ReminderEmail     string `json:"reminder_email"`
}

type setFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type batchUpdateRow struct {
	ID               uuid.UUID `json:"id"`
	SkillType        string    `json:"skill_type"`
	CompletionStatus string    `json:"completion_status"`
}

type priorityRow struct {
	ID       string `json:"id"`
	Priority int    `json:"priority"`
}

type moveRequest struct {
	DraggedID string `json:"dragged_id"`
	TargetID  string `json:"target_id"`
}

func NewSkillHandler(skills usecase.SkillUsecase, updates usecase.SkillUpdateUsecase, priorities usecase.SkillPriorityUsecase) *SkillHandler {
	return &SkillHandler{skills: skills, updates: updates, priorities: priorities}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)

	grp.Get("/updates", h.ListUpdates)
	grp.Put("/updates", h.SaveBatch)

	grp.Get("/priorities", h.ListPriorities)
	grp.Put("/priorities", h.SavePriorities)
	grp.Post("/priorities/move", h.MovePriority)

	grp.Patch("/:id/fields", h.SetField)
	grp.Delete("/:id", h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.skills.List(c.Context(), userID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillResponses(items))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req createSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.skills.Create(c.Context(), userID, usecase.SkillInput{
		Name:              req.Name,
		SkillType:         req.SkillType,
		ProficiencyLevel:  req.ProficiencyLevel,
		CompletionStatus:  req.CompletionStatus,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ReasonToLearn:     req.ReasonToLearn,
		ReminderNeeded:    req.ReminderNeeded,
		ReminderFrequency: req.ReminderFrequency,
		NextReminderDate:  req.NextReminderDate,
		ReminderEmail:     req.ReminderEmail,
	})
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill saved", dto.NewSkillResponse(created))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.skills.Delete(c.Context(), userID, id); err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Record deleted", nil)
}

func (h *SkillHandler) ListUpdates(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.updates.List(c.Context(), userID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillUpdateResponses(items))
}

func (h *SkillHandler) SetField(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req setFieldRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.updates.SetField(c.Context(), userID, id, req.Field, req.Value)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated", dto.NewSkillUpdateResponse(updated))
}

func (h *SkillHandler) SaveBatch(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var rows []batchUpdateRow
	if err := bindBody(c, &rows); err != nil {
		return err
	}

	updates := make([]usecase.SkillBatchUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, usecase.SkillBatchUpdate{ID: row.ID, SkillType: row.SkillType, CompletionStatus: row.CompletionStatus})
	}
	if err := h.updates.SaveBatch(c.Context(), userID, updates); err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills updated", nil)
}

func (h *SkillHandler) ListPriorities(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.priorities.List(c.Context(), userID)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PriorityItems(items))
}

func (h *SkillHandler) SavePriorities(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var rows []priorityRow
	if err := bindBody(c, &rows); err != nil {
		return err
	}

	updates := make([]ordering.OrderUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, ordering.OrderUpdate{ID: row.ID, OrderKey: row.Priority})
	}
	items, err := h.priorities.Save(c.Context(), userID, updates)
	if err != nil {
		return mapDashboardError(err)
	}
	return response.Success(c, fiber.StatusOK, usecase.PriorityOrderMessages.SuccessMessage, dto.PriorityItems(items))
}

// MovePriority drops one skill onto another. Unknown ids leave the list
// unchanged and still answer with the current order.
func (h *SkillHandler) MovePriority(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req moveRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	items, moved, err := h.priorities.Move(c.Context(), userID, req.DraggedID, req.TargetID)
	if err != nil {
		return mapDashboardError(err)
	}
	msg := response.MessageOK
	if moved {
		msg = usecase.PriorityOrderMessages.SuccessMessage
	}
	return response.Success(c, fiber.StatusOK, msg, dto.PriorityItems(items))
}
