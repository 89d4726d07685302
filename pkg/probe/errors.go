package probe

import (
	"errors"
	"fmt"
)

// Probe errors
var (
	// ErrEnumerationOverflow indicates a sentinel-terminated list never
	// terminated within the iteration ceiling. A healthy device always
	// reports NoDataAvailable well before the ceiling, so this marks a
	// misbehaving or wedged controller.
	ErrEnumerationOverflow = errors.New("enumeration exceeded iteration ceiling")

	// ErrProbeTimeout indicates the per-device deadline expired before
	// the probe sequence completed.
	ErrProbeTimeout = errors.New("probe deadline exceeded")
)

// Error wraps a probe failure with the state machine phase it
// occurred in. The probe for the device aborts at that phase; other
// devices in a batch are unaffected.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("probe failed while %s: %v", e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (p *Prober) fail(err error) error {
	return &Error{State: p.state, Err: err}
}
