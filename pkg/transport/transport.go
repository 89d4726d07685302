package transport

import (
	"fmt"

	"github.com/herlein/gocam/pkg/registers"
)

// RegisterReadWriter is the register-level control channel to the
// camera controller. Both calls are synchronous and block until the
// bus transaction completes. Implementations are not safe for
// concurrent use: the device keeps per-category cursor state behind
// these registers, so a bus session must have exactly one driver.
type RegisterReadWriter interface {
	// ReadReg reads the 32-bit value of a register.
	ReadReg(reg registers.Reg) (uint32, error)

	// WriteReg writes a 32-bit value to a register.
	WriteReg(reg registers.Reg, value uint32) error
}

// Op identifies the bus operation that failed.
type Op string

const (
	OpOpen  Op = "open"
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// Error is a bus-level transport failure: open failure, NACK or
// timeout. It wraps the underlying error and records which register
// was being accessed.
type Error struct {
	Op  Op
	Bus int
	Reg registers.Reg
	Err error
}

func (e *Error) Error() string {
	if e.Op == OpOpen {
		return fmt.Sprintf("i2c-%d: %s: %v", e.Bus, e.Op, e.Err)
	}
	return fmt.Sprintf("i2c-%d: %s reg 0x%04X: %v", e.Bus, e.Op, e.Reg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
