package probe

import (
	"context"
	"fmt"

	"github.com/herlein/gocam/pkg/registers"
	"github.com/herlein/gocam/pkg/transport"
)

// enumerate pages through one of the device's sentinel-terminated
// lists. The device keeps the list cursor itself: writing indexReg
// selects an entry, and every subsequent detail-register read refers
// to that entry until the cursor moves. The enumerator owns the
// cursor exclusively; two enumerators must never interleave on the
// same category.
//
// Protocol per entry: write indexReg := i, read presenceReg. The
// sentinel NoDataAvailable ends the list; any other value is handed
// to decode together with the index. Entries past the ceiling raise
// ErrEnumerationOverflow instead of looping forever against a device
// that never reports the sentinel.
func enumerate[T any](ctx context.Context, tr transport.RegisterReadWriter,
	indexReg, presenceReg registers.Reg, ceiling int,
	decode func(index, presence uint32) (T, error)) ([]T, error) {

	var entries []T
	for index := uint32(0); ; index++ {
		if int(index) >= ceiling {
			return nil, fmt.Errorf("%w: reg 0x%04X still reporting entries after %d",
				ErrEnumerationOverflow, indexReg, ceiling)
		}
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		if err := tr.WriteReg(indexReg, index); err != nil {
			return nil, err
		}
		presence, err := tr.ReadReg(presenceReg)
		if err != nil {
			return nil, err
		}
		if presence == registers.NoDataAvailable {
			return entries, nil
		}
		entry, err := decode(index, presence)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// checkContext maps a context deadline to ErrProbeTimeout so callers
// see the probe's own timeout condition rather than a bare context
// error.
func checkContext(ctx context.Context) error {
	switch err := ctx.Err(); err {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrProbeTimeout, err)
	default:
		return err
	}
}
