package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPollNotFound        = errors.New("poll not found")
	ErrInvalidPollID       = errors.New("invalid poll id")
	ErrPollInactive        = errors.New("poll is no longer active")
	ErrPollClosed          = errors.New("voting period has ended")
	ErrInvalidOption       = errors.New("invalid option for this poll")
	ErrAlreadyVoted        = errors.New("user has already voted")
	ErrVoteNotFound        = errors.New("user did not vote on this poll")
	ErrConstraintViolation = errors.New("storage constraint violated")
	ErrUnavailable         = errors.New("storage temporarily unavailable")
)

// ValidationError reports a malformed input field. It is always raised
// before any storage call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
