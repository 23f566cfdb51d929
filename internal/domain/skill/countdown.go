package skill

import (
	"fmt"
	"time"

	"career-dash/internal/pkg/dates"
)

const (
	ClassGray   = "gray-days"
	ClassRed    = "red-days"
	ClassYellow = "yellow-days"
	ClassGreen  = "green-days"

	noEndDate = "No end date"
)

type Countdown struct {
	DaysRemaining int
	Text          string
	Tooltip       string
	Class         string
}

// CountdownFor computes the end-date countdown shown next to a skill.
// Days are counted between calendar dates, so the time of day of today is
// irrelevant. A missing end date yields -1.
func CountdownFor(end *time.Time, today time.Time) Countdown {
	if end == nil {
		return Countdown{DaysRemaining: -1, Text: noEndDate, Tooltip: noEndDate, Class: ClassGray}
	}

	days := dates.DaysBetween(today, *end)
	c := Countdown{
		DaysRemaining: days,
		Tooltip:       "End Date: " + end.Format(dates.Layout),
		Class:         CountdownClass(days),
	}
	switch {
	case days < 0:
		c.Text = noEndDate
	case days == 1:
		c.Text = "1 day remaining"
	default:
		c.Text = fmt.Sprintf("%d days remaining", days)
	}
	return c
}

func CountdownClass(days int) string {
	switch {
	case days < 0:
		return ClassGray
	case days < 5:
		return ClassRed
	case days <= 7:
		return ClassYellow
	default:
		return ClassGreen
	}
}
