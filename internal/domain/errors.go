package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrPromotionNotFound = errors.New("promotion not found")
)

// CodeConflictError is returned when a promotion code is already taken.
type CodeConflictError struct {
	Code string
}

func (e *CodeConflictError) Error() string {
	return fmt.Sprintf("code %q is already in use", e.Code)
}

// TransitionError is returned when a lead status change is not allowed.
type TransitionError struct {
	Event   LeadEvent
	Current LeadStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from status %q", e.Event, e.Current)
}

// ValidationError is returned when an admin update carries an unusable
// value. The message is safe to surface to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
