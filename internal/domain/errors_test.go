package domain_test

import (
	"testing"

	"github.com/tidybook/tidybook/internal/domain"
)

func TestCodeConflictError_Error(t *testing.T) {
	err := &domain.CodeConflictError{Code: "GIFT-A1B2"}
	want := `code "GIFT-A1B2" is already in use`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &domain.TransitionError{
		Event:   domain.EventContact,
		Current: domain.StatusBooked,
	}
	want := `event "contact" is not valid from status "booked"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &domain.ValidationError{Field: "service_date", Message: "must not be in the past"}
	want := "service_date: must not be in the past"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
