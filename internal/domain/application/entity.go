package application

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNone        Status = "None"
	StatusApplied     Status = "Applied"
	StatusShortlisted Status = "Shortlisted"
	StatusInterview   Status = "Interview"
	StatusSelected    Status = "Selected"
	StatusRejected    Status = "Rejected"
)

var Statuses = []Status{StatusNone, StatusApplied, StatusShortlisted, StatusInterview, StatusSelected, StatusRejected}

var (
	ErrInvalidStatus  = errors.New("invalid application status")
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrStatusRequired = errors.New("a status other than None is required")
)

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusNone, nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// ParseUpdateStatus parses a status picked in the reminder dialog, where
// None is not a valid choice.
func ParseUpdateStatus(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrStatusRequired
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	if st == StatusNone {
		return "", ErrStatusRequired
	}
	return st, nil
}

type Application struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	StudentName     string
	CompanyName     string
	Email           string
	RoleApplied     string
	Status          Status
	Note            string
	LastDateToApply *time.Time
	AppliedOn       *time.Time
	Applied         bool
	CreatedAt       time.Time
}

// Validate normalizes whitespace and checks the fields the tracker form
// requires before anything is stored.
func (a *Application) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.StudentName = strings.TrimSpace(a.StudentName)
	a.CompanyName = strings.TrimSpace(a.CompanyName)
	a.Email = strings.TrimSpace(a.Email)
	a.RoleApplied = strings.TrimSpace(a.RoleApplied)

	if a.Name == "" || a.CompanyName == "" {
		return ErrMissingField
	}
	if a.Email != "" {
		if _, err := mail.ParseAddress(a.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if a.Status == "" {
		a.Status = StatusNone
	}
	return nil
}
