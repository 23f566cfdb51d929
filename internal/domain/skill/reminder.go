package skill

import (
	"strings"
	"time"
)

type ReminderFrequency string

const (
	FrequencyWeekly  ReminderFrequency = "Weekly"
	FrequencyMonthly ReminderFrequency = "Monthly"
	FrequencyCustom  ReminderFrequency = "Custom"
)

func ParseReminderFrequency(s string) (ReminderFrequency, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parseEnum(s, []ReminderFrequency{FrequencyWeekly, FrequencyMonthly, FrequencyCustom})
}

// Next returns the reminder date following from. Custom reminders repeat
// every customDays days; an unknown frequency is treated as weekly.
func (f ReminderFrequency) Next(from time.Time, customDays int) time.Time {
	switch f {
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyCustom:
		if customDays <= 0 {
			customDays = 1
		}
		return from.AddDate(0, 0, customDays)
	default:
		return from.AddDate(0, 0, 7)
	}
}
