package probe

import (
	"errors"
	"time"

	"github.com/herlein/gocam/pkg/registers"
	"github.com/herlein/gocam/pkg/transport"
)

// retryTransport wraps a register channel with bounded retry. Bus
// NACKs and timeouts on a shared I2C bus are frequently transient, so
// each failed operation is reattempted with doubling backoff before
// the transport error surfaces. Only *transport.Error is retried;
// anything else aborts immediately.
type retryTransport struct {
	tr      transport.RegisterReadWriter
	retries int
	backoff time.Duration
	sleep   func(time.Duration)
}

func (r *retryTransport) ReadReg(reg registers.Reg) (uint32, error) {
	var value uint32
	err := r.attempt(func() error {
		var err error
		value, err = r.tr.ReadReg(reg)
		return err
	})
	return value, err
}

func (r *retryTransport) WriteReg(reg registers.Reg, value uint32) error {
	return r.attempt(func() error {
		return r.tr.WriteReg(reg, value)
	})
}

func (r *retryTransport) attempt(op func() error) error {
	backoff := r.backoff
	var err error
	for try := 0; ; try++ {
		err = op()
		if err == nil {
			return nil
		}
		var te *transport.Error
		if try >= r.retries || !errors.As(err, &te) {
			return err
		}
		r.sleep(backoff)
		backoff *= 2
	}
}
