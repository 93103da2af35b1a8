// Package validation holds the pure input checks shared by the web
// handlers: date parsing and the date-range rules for projects and tasks.
package validation

import (
	"errors"
	"time"

	"github.com/teamflow-app/teamflow/internal/constants"
)

var (
	ErrMissingFields        = errors.New("one or more required fields are empty")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrStartDateInPast      = errors.New("start date cannot be in the past")
	ErrDueDateNotAfterStart = errors.New("due date must be after the start date")
	ErrDueDateOutOfRange    = errors.New("due date out of range")
)

// ParseDate accepts ISO dates only ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// RequireFields fails if any value is empty.
func RequireFields(values ...string) error {
	for _, v := range values {
		if v == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// ValidateProjectDates checks a new project's date range: the start may not
// be before today, and the due date must be strictly after the start.
func ValidateProjectDates(start, due, today time.Time) error {
	if start.Before(today) {
		return ErrStartDateInPast
	}
	if !due.After(start) {
		return ErrDueDateNotAfterStart
	}
	return nil
}

// ValidateTaskDueDate checks that a task due date falls inside the project's
// [start, due] range, both bounds inclusive.
func ValidateTaskDueDate(due, projectStart, projectDue time.Time) error {
	if due.Before(projectStart) || due.After(projectDue) {
		return ErrDueDateOutOfRange
	}
	return nil
}

// Today truncates a time to its calendar date, for comparison against
// parsed form dates.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
