package dto

import (
	"career-dash/internal/domain/badge"
	"career-dash/internal/domain/ordering"

	"github.com/google/uuid"
)

type BadgeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	LabelClass  string    `json:"label_class"`
}

func BadgeResponses(items []badge.Badge) []BadgeResponse {
	out := make([]BadgeResponse, 0, len(items))
	for _, b := range items {
		out = append(out, BadgeResponse{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			IconURL:     b.IconURL,
			LabelClass:  badge.LabelClass(b.Name),
		})
	}
	return out
}

type UserBadgeResponse struct {
	ID           string    `json:"id"`
	BadgeID      uuid.UUID `json:"badge_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IconURL      string    `json:"icon_url"`
	LabelClass   string    `json:"label_class"`
	EarnedDate   string    `json:"earned_date"`
	DisplayOrder int       `json:"display_order"`
}

func NewUserBadgeResponse(ub badge.UserBadge, order int) UserBadgeResponse {
	return UserBadgeResponse{
		ID:           ub.ID.String(),
		BadgeID:      ub.BadgeID,
		Name:         ub.Name,
		Description:  ub.Description,
		IconURL:      ub.IconURL,
		LabelClass:   badge.LabelClass(ub.Name),
		EarnedDate:   badge.FormatEarnedDate(ub.EarnedDate),
		DisplayOrder: order,
	}
}

// BadgeItems encodes the badge grid for both HTTP and websocket clients.
func BadgeItems(items []ordering.Item[badge.UserBadge]) []UserBadgeResponse {
	out := make([]UserBadgeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewUserBadgeResponse(it.Payload, it.OrderKey))
	}
	return out
}
