package badge

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const EarnedDateLayout = "Jan 2, 2006"

type Badge struct {
	ID          uuid.UUID
	Name        string
	Description string
	IconURL     string
	CreatedAt   time.Time
}

// UserBadge is a badge earned by a user, the unit the display grid orders.
type UserBadge struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BadgeID      uuid.UUID
	Name         string
	Description  string
	IconURL      string
	EarnedDate   *time.Time
	DisplayOrder *int
}

// LabelClass picks the label style from the badge level named in its title.
func LabelClass(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "beginner"):
		return "label-beginner"
	case strings.Contains(n, "intermediate"):
		return "label-intermediate"
	case strings.Contains(n, "advanced"):
		return "label-advanced"
	}
	return ""
}

func FormatEarnedDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(EarnedDateLayout)
}
