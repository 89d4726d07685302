package probe

import (
	"context"
	"errors"

	"github.com/herlein/gocam/pkg/capability"
	"github.com/herlein/gocam/pkg/registers"
)

// ListFormats runs the light listing sequence: it selects the first
// pixel format, decodes its FOURCC, and enumerates the resolutions
// with their max frame rates. Control bounds are not read, so this is
// much quicker than a full Probe. Like Probe it consumes the prober.
func (p *Prober) ListFormats(ctx context.Context) (*PixelFormat, error) {
	if p.state != StateIdle {
		return nil, errors.New("probe sequence already run")
	}
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	p.state = StateEnumeratingFormats
	if err := checkContext(ctx); err != nil {
		return nil, p.fail(err)
	}
	if err := p.tr.WriteReg(registers.PixFormatIndex, 0); err != nil {
		return nil, p.fail(err)
	}
	pixType, err := p.tr.ReadReg(registers.PixFormatType)
	if err != nil {
		return nil, p.fail(err)
	}
	order, err := p.tr.ReadReg(registers.PixFormatOrder)
	if err != nil {
		return nil, p.fail(err)
	}

	format := &PixelFormat{
		RawType:  uint8(pixType),
		RawOrder: uint8(order),
		FourCC:   capability.FourCC(pixType, order),
		Name:     capability.PixTypeName(pixType),
	}

	p.state = StateEnumeratingResolutions
	resolutions, err := p.enumerateResolutions(ctx, false)
	if err != nil {
		return nil, p.fail(err)
	}
	format.Resolutions = resolutions

	p.state = StateDone
	return format, nil
}
