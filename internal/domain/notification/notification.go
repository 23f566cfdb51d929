package notification

import (
	"errors"
	"strings"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

const FallbackMessage = "Something went wrong"

type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives toast notifications. Delivery is fire-and-forget.
type Sink interface {
	Notify(n Notification)
}

type SinkFunc func(n Notification)

func (f SinkFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

type discard struct{}

func (discard) Notify(Notification) {}

var Discard Sink = discard{}

func Success(title, message string) Notification {
	return Notification{Title: title, Message: message, Severity: SeveritySuccess}
}

func Error(title, message string) Notification {
	return Notification{Title: title, Message: message, Severity: SeverityError}
}

func Warning(title, message string) Notification {
	return Notification{Title: title, Message: message, Severity: SeverityWarning}
}

func Info(title, message string) Notification {
	return Notification{Title: title, Message: message, Severity: SeverityInfo}
}

// RemoteError is an error returned by the data service that carries a
// message safe to show to the student.
type RemoteError struct {
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// MessageOf returns the structured message carried by err, or fallback when
// err has none.
func MessageOf(err error, fallback string) string {
	if strings.TrimSpace(fallback) == "" {
		fallback = FallbackMessage
	}
	var re *RemoteError
	if errors.As(err, &re) && strings.TrimSpace(re.Message) != "" {
		return re.Message
	}
	return fallback
}
