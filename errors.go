package psuutils

import (
	"errors"
	"fmt"
)

var (
	// ErrResolutionFailed is wrapped by errors from a failed mapper call.
	// A mapper reply with no owners is not an error.
	ErrResolutionFailed = errors.New("mapper call failed")

	// ErrPropertyFetchFailed is wrapped by errors from a failed Properties.Get call.
	ErrPropertyFetchFailed = errors.New("get property call failed")

	// ErrTypeMismatch is wrapped by *TypeMismatchError.
	ErrTypeMismatch = errors.New("property type mismatch")

	// ErrUnsupportedKind is returned when a wire value has no Value kind.
	ErrUnsupportedKind = errors.New("unsupported value kind")
)

// TypeMismatchError reports a request for a type the Value does not hold.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property type mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
