package skill

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeLearned Type = "Learned"
	TypeToLearn Type = "To Learn"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
)

type CompletionStatus string

const (
	CompletionNotStarted CompletionStatus = "Not Started"
	CompletionInProgress CompletionStatus = "In Progress"
	CompletionAchieved   CompletionStatus = "Achieved"
	CompletionDeferred   CompletionStatus = "Deferred"
)

var (
	ErrMissingRequired = errors.New("missing required field")
	ErrReminderEmail   = errors.New("reminder email required")
	ErrInvalidValue    = errors.New("invalid field value")
)

func ParseType(s string) (Type, error) {
	return parseEnum(s, []Type{TypeLearned, TypeToLearn})
}

func ParseProficiency(s string) (Proficiency, error) {
	return parseEnum(s, []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced})
}

func ParseCompletionStatus(s string) (CompletionStatus, error) {
	return parseEnum(s, []CompletionStatus{CompletionNotStarted, CompletionInProgress, CompletionAchieved, CompletionDeferred})
}

func parseEnum[E ~string](s string, allowed []E) (E, error) {
	s = strings.TrimSpace(s)
	for _, v := range allowed {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero E
	return zero, ErrInvalidValue
}

type Skill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Type             Type
	Proficiency      Proficiency
	CompletionStatus CompletionStatus
	StartDate        *time.Time
	EndDate          *time.Time
	ReasonToLearn    string
	Reminder         Reminder
	Priority         *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Reminder struct {
	Needed    bool
	Frequency ReminderFrequency
	NextDate  *time.Time
	Email     string
}

// Validate checks a skill submitted from the tracker form. Enum values are
// expected to be parsed already; an empty one counts as missing.
func (s *Skill) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" || s.Type == "" || s.Proficiency == "" || s.CompletionStatus == "" || s.StartDate == nil {
		return ErrMissingRequired
	}

	if !s.Reminder.Needed {
		s.Reminder = Reminder{}
		return nil
	}

	s.Reminder.Email = strings.TrimSpace(s.Reminder.Email)
	if s.Reminder.Email == "" {
		return ErrReminderEmail
	}
	if _, err := mail.ParseAddress(s.Reminder.Email); err != nil {
		return ErrReminderEmail
	}
	return nil
}
