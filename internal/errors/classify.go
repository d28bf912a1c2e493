package errors

import (
	"context"
	"errors"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, wrong state).
	CategoryUser
	// CategorySystem indicates a failure of storage or the terminal.
	CategorySystem
	// CategoryInternal indicates an unexpected failure inside a run.
	CategoryInternal
	// CategoryCancelled indicates the caller gave up (context cancelled).
	CategoryCancelled
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	case CategoryInternal:
		return "internal"
	case CategoryCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var userSentinels = []error{
	ErrAlreadyRunning,
	ErrEmptyProgram,
	ErrLastActor,
	ErrActorNotFound,
	ErrBlockNotFound,
	ErrNotRepeat,
	ErrInvalidProgram,
	ErrInvalidSprite,
	ErrRunNotFound,
	ErrInvalidConfig,
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryCancelled
	}
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) {
		return CategorySystem
	}
	if errors.Is(err, ErrRunFailed) {
		return CategoryInternal
	}
	for _, s := range userSentinels {
		if errors.Is(err, s) {
			return CategoryUser
		}
	}
	return CategoryUnknown
}

// FormatByCategory returns a user-appropriate error message based on category.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	switch Classify(err) {
	case CategoryUser:
		if suggestion := GetSuggestion(err); suggestion != "" {
			return msg + "\n\nTry: " + suggestion
		}
		return msg

	case CategorySystem:
		if suggestion := GetSuggestion(err); suggestion != "" {
			return "System error: " + msg + "\n\n" + suggestion
		}
		return "System error: " + msg

	case CategoryCancelled:
		return msg + " (interrupted)"

	default:
		return msg
	}
}
