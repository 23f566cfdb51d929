package dto

import (
	"time"

	"career-dash/internal/domain/application"
	"career-dash/internal/pkg/dates"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	StudentName     string    `json:"student_name"`
	CompanyName     string    `json:"company_name"`
	Email           string    `json:"email"`
	RoleApplied     string    `json:"role_applied"`
	CurrentStatus   string    `json:"current_status"`
	Note            string    `json:"note"`
	LastDateToApply *string   `json:"last_date_to_apply"`
	AppliedOn       *string   `json:"applied_on"`
	Applied         bool      `json:"applied"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		Name:            a.Name,
		StudentName:     a.StudentName,
		CompanyName:     a.CompanyName,
		Email:           a.Email,
		RoleApplied:     a.RoleApplied,
		CurrentStatus:   string(a.Status),
		Note:            a.Note,
		LastDateToApply: datePtr(a.LastDateToApply),
		AppliedOn:       datePtr(a.AppliedOn),
		Applied:         a.Applied,
		CreatedAt:       a.CreatedAt,
	}
}

func ApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dates.Format(t)
	return &s
}
