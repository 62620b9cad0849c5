package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrUnknownEventType indicates an event TYPE or code outside the closed enumeration.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrUnknownGenre indicates a genre tag other than bn, nw or wl.
	ErrUnknownGenre = errors.New("unknown genre")
)

// UnknownEventTypeError carries the value that failed to resolve
type UnknownEventTypeError struct {
	Value string
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Value)
}

func (e *UnknownEventTypeError) Unwrap() error {
	return ErrUnknownEventType
}
