package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrPasswordTooLong = errors.New("password too long")
	ErrInvalidAdoption = errors.New("invalid adoption request")
)

// AdoptionError reports a failed adoption. Donations written before the
// failure stay in the store; Recorded says how many there are.
type AdoptionError struct {
	Recorded int
	Total    int
	Err      error
}

func (e *AdoptionError) Error() string {
	return fmt.Sprintf("adoption partially recorded (%d of %d letters): %v", e.Recorded, e.Total, e.Err)
}

func (e *AdoptionError) Unwrap() error {
	return e.Err
}
