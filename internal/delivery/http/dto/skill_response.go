package dto

import (
	"time"

	"career-dash/internal/domain/ordering"
	"career-dash/internal/domain/skill"
	"career-dash/internal/usecase"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	SkillType         string    `json:"skill_type"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	CompletionStatus  string    `json:"completion_status"`
	StartDate         *string   `json:"start_date"`
	EndDate           *string   `json:"end_date"`
	ReasonToLearn     string    `json:"reason_to_learn"`
	ReminderNeeded    bool      `json:"reminder_needed"`
	ReminderFrequency string    `json:"reminder_frequency,omitempty"`
	NextReminderDate  *string   `json:"next_reminder_date,omitempty"`
	ReminderEmail     string    `json:"reminder_email,omitempty"`
	Priority          *int      `json:"priority"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:                s.ID,
		Name:              s.Name,
		SkillType:         string(s.Type),
		ProficiencyLevel:  string(s.Proficiency),
		CompletionStatus:  string(s.CompletionStatus),
		StartDate:         datePtr(s.StartDate),
		EndDate:           datePtr(s.EndDate),
		ReasonToLearn:     s.ReasonToLearn,
		ReminderNeeded:    s.Reminder.Needed,
		ReminderFrequency: string(s.Reminder.Frequency),
		NextReminderDate:  datePtr(s.Reminder.NextDate),
		ReminderEmail:     s.Reminder.Email,
		Priority:          s.Priority,
		UpdatedAt:         s.UpdatedAt,
	}
}

func SkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

// SkillUpdateResponse is a skill row of the update panel with its end-date
// countdown.
type SkillUpdateResponse struct {
	SkillResponse
	DaysRemaining        int    `json:"days_remaining"`
	DaysRemainingText    string `json:"days_remaining_text"`
	DaysRemainingTooltip string `json:"days_remaining_tooltip"`
	DaysRemainingClass   string `json:"days_remaining_class"`
}

func NewSkillUpdateResponse(s usecase.SkillWithCountdown) SkillUpdateResponse {
	return SkillUpdateResponse{
		SkillResponse:        NewSkillResponse(s.Skill),
		DaysRemaining:        s.Countdown.DaysRemaining,
		DaysRemainingText:    s.Countdown.Text,
		DaysRemainingTooltip: s.Countdown.Tooltip,
		DaysRemainingClass:   s.Countdown.Class,
	}
}

func SkillUpdateResponses(items []usecase.SkillWithCountdown) []SkillUpdateResponse {
	out := make([]SkillUpdateResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillUpdateResponse(s))
	}
	return out
}

type PriorityItemResponse struct {
	ID       string `json:"id"`
	Priority int    `json:"priority"`
	Name     string `json:"name"`
}

// PriorityItems encodes the priority list for both HTTP and websocket clients.
func PriorityItems(items []ordering.Item[skill.Skill]) []PriorityItemResponse {
	out := make([]PriorityItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, PriorityItemResponse{ID: it.ID, Priority: it.OrderKey, Name: it.Payload.Name})
	}
	return out
}
