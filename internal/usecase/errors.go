// Package usecase holds the service layer. Failure cases are modeled
// as sentinel errors so handlers can map them to HTTP statuses with
// errors.Is instead of string matching.
package usecase

import "errors"

var (
	// Validation
	ErrValidation      = errors.New("validation failed")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// Events
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotAvailable = errors.New("event is not open for booking")
	ErrEventExpired      = errors.New("event date has passed")
	ErrResizeBelowBooked = errors.New("total tickets cannot drop below booked quantity")

	// Inventory
	ErrInsufficientInventory = errors.New("not enough tickets remaining")
	ErrTimeout               = errors.New("inventory operation timed out")

	// Bookings
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAlreadyCanceled    = errors.New("booking is already canceled")
	ErrCompensationFailed = errors.New("booking failed and ticket release could not be completed")

	// Users and auth
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrForbidden          = errors.New("not allowed to access this resource")
)

// IsNotFound reports whether err maps to a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict reports whether err maps to a state conflict rather than
// a bad request or a missing resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInsufficientInventory) ||
		errors.Is(err, ErrResizeBelowBooked) ||
		errors.Is(err, ErrEmailTaken)
}

// IsValidation reports whether err maps to malformed or rejected input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrEventNotAvailable) ||
		errors.Is(err, ErrEventExpired) ||
		errors.Is(err, ErrAlreadyCanceled) ||
		errors.Is(err, ErrInvalidOTP)
}
