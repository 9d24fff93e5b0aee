package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	ErrInvalidCategory     = errors.New("invalid nen category")
	ErrNullResult          = errors.New("generation returned no usable payload")
	ErrGenerationExhausted = errors.New("generation exhausted")
	ErrInvalidRequest      = errors.New("invalid request parameters")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded: too many requests")
	ErrMatchingUnavailable = errors.New("player matching is not configured")
)

// GenerationExhaustedError is returned once every attempt of a generation call
// has failed. Only the final attempt's cause is kept.
type GenerationExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrGenerationExhausted, e.Attempts, e.Cause)
}

// Unwrap exposes both the error kind and the last cause to errors.Is / errors.As.
func (e *GenerationExhaustedError) Unwrap() []error {
	return []error{ErrGenerationExhausted, e.Cause}
}
