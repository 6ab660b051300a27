package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceUnavailable means no endpoint of the required direction
	// exists at all. A selector that merely matches nothing is not this
	// error; that falls back to the default endpoint.
	ErrDeviceUnavailable = errors.New("no audio device available")
	// ErrAlreadyInitialized is returned by a second Initialize; sources are
	// single-use.
	ErrAlreadyInitialized = errors.New("capture source already initialized")
)

// InitError wraps a native activation or format-negotiation failure,
// preserving the platform's own error for operators to inspect.
type InitError struct {
	Direction string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s capture: %v", e.Direction, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
