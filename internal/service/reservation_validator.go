package service

import (
	"regexp"
	"time"

	"tablebook/internal/errors"
	"tablebook/internal/model"
)

const (
	minPartySize = 1
	maxPartySize = 20
)

var (
	// Local part, @, domain, dot, TLD; no whitespace and no second @ anywhere.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional leading +, then at least ten digits, spaces, hyphens or parentheses.
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// ReservationValidator validates reservation input fields.
type ReservationValidator struct{}

// NewReservationValidator creates a new reservation validator.
func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{}
}

// ValidateEmail checks email syntax.
func (v *ReservationValidator) ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.NewValidationError("Please provide a valid email address")
	}
	return nil
}

// ValidatePhone checks the phone number pattern.
func (v *ReservationValidator) ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.NewValidationError("Please provide a valid phone number")
	}
	return nil
}

// ParseDate parses a reservation date and truncates it to midnight UTC.
// Accepts a plain calendar date or an RFC 3339 timestamp.
func (v *ReservationValidator) ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, errors.NewValidationError("Please provide a valid reservation date")
		}
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateDateNotPast rejects dates strictly before today. Both sides are
// compared at midnight granularity.
func (v *ReservationValidator) ValidateDateNotPast(date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return errors.NewValidationError("Reservation date cannot be in the past")
	}
	return nil
}

// ValidatePartySize checks the allowed party size range.
func (v *ReservationValidator) ValidatePartySize(size int) error {
	if size < minPartySize || size > maxPartySize {
		return errors.NewValidationError("Party size must be between 1 and 20")
	}
	return nil
}

// ValidateOccasion checks the occasion against the known set.
func (v *ReservationValidator) ValidateOccasion(occasion model.OccasionType) error {
	if !occasion.IsValid() {
		return errors.NewValidationError("Please select a valid occasion")
	}
	return nil
}
