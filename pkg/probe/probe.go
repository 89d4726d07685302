// Package probe discovers the identity, pixel formats, resolutions
// and tunable controls of a camera controller over its register
// channel. The controller exposes dynamically sized lists through an
// index-register/value-register convention terminated by a sentinel;
// the prober pages through these lists, decodes the packed fields and
// assembles a DeviceReport.
package probe

import (
	"context"
	"errors"
	"time"

	"github.com/herlein/gocam/pkg/capability"
	"github.com/herlein/gocam/pkg/firmware"
	"github.com/herlein/gocam/pkg/registers"
	"github.com/herlein/gocam/pkg/transport"
)

// settleDelay is the wait the firmware requires between resetting a
// control's value register and reading its bounds. Device timing
// contract, not tunable.
const settleDelay = 50 * time.Millisecond

// softVersionMaxLen bounds the declared software version length;
// larger values (and the sentinel) mean no version string is present.
const softVersionMaxLen = 255

// Prober runs the probe sequence against a single device. It owns
// the bus session exclusively for the duration of the probe: the
// device-side index cursors are session state that a concurrent
// driver would corrupt. A Prober runs exactly one sequence; build a
// new one per probe.
type Prober struct {
	tr    transport.RegisterReadWriter
	cfg   Config
	state State
	sleep func(time.Duration)
}

// New creates a Prober over the given register channel.
func New(tr transport.RegisterReadWriter, opts ...Option) *Prober {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Prober{cfg: cfg, state: StateIdle, sleep: time.Sleep}
	p.tr = tr
	if cfg.Retries > 0 {
		p.tr = &retryTransport{
			tr:      tr,
			retries: cfg.Retries,
			backoff: cfg.RetryBackoff,
			sleep:   func(d time.Duration) { p.sleep(d) },
		}
	}
	return p
}

// State returns the phase the prober is in. After a failed Probe it
// reports the phase the sequence aborted in.
func (p *Prober) State() State { return p.state }

// Probe runs the full sequence: identity registers, firmware version,
// software version string, then the nested format/resolution/control
// enumerations. On any transport failure the probe aborts in its
// current state and the returned error records that state.
func (p *Prober) Probe(ctx context.Context) (*DeviceReport, error) {
	if p.state != StateIdle {
		return nil, errors.New("probe sequence already run")
	}
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	report := &DeviceReport{}

	p.state = StateIdentifying
	if err := p.identify(ctx, report); err != nil {
		return nil, p.fail(err)
	}
	p.logInfo("identified device",
		"device_id", report.DeviceID,
		"sensor_id", report.SensorID,
		"firmware", report.Firmware.String(),
	)

	p.state = StateEnumeratingFormats
	formats, err := p.enumerateFormats(ctx)
	if err != nil {
		return nil, p.fail(err)
	}
	report.PixelFormats = formats

	// Park the format cursor back on the first entry so the next
	// session starts from a known position.
	if err := p.tr.WriteReg(registers.PixFormatIndex, 0); err != nil {
		return nil, p.fail(err)
	}

	p.state = StateDone
	return report, nil
}

func (p *Prober) identify(ctx context.Context, report *DeviceReport) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	var err error
	if report.DeviceID, err = p.tr.ReadReg(registers.DeviceID); err != nil {
		return err
	}
	if report.DeviceVersion, err = p.tr.ReadReg(registers.DeviceVersion); err != nil {
		return err
	}
	if report.SensorID, err = p.tr.ReadReg(registers.FirmwareSensorID); err != nil {
		return err
	}

	raw, err := p.tr.ReadReg(registers.UniqueID)
	if err != nil {
		return err
	}
	report.Firmware = firmware.Decode(raw)

	report.SoftwareVersion, err = p.readSoftwareVersion(ctx)
	return err
}

// readSoftwareVersion reads the firmware's software version string
// one character at a time. A declared length above 255 (or the
// sentinel) means no string is present. Character codes above 255 are
// invalid and skipped, so the result may be shorter than the declared
// length.
func (p *Prober) readSoftwareVersion(ctx context.Context) (string, error) {
	length, err := p.tr.ReadReg(registers.SoftVersionLen)
	if err != nil {
		return "", err
	}
	if length == registers.NoDataAvailable || length > softVersionMaxLen {
		return "None", nil
	}

	version := make([]byte, 0, length)
	for i := uint32(0); i < length; i++ {
		if err := checkContext(ctx); err != nil {
			return "", err
		}
		if err := p.tr.WriteReg(registers.SoftVersionIndex, i); err != nil {
			return "", err
		}
		ch, err := p.tr.ReadReg(registers.SoftVersionChar)
		if err != nil {
			return "", err
		}
		if ch > 255 {
			continue
		}
		version = append(version, byte(ch))
	}
	return string(version), nil
}

func (p *Prober) enumerateFormats(ctx context.Context) ([]PixelFormat, error) {
	return enumerate(ctx, p.tr, registers.PixFormatIndex, registers.PixFormatIndex,
		p.cfg.IterationCeiling, func(index, _ uint32) (PixelFormat, error) {
			pixType, err := p.tr.ReadReg(registers.PixFormatType)
			if err != nil {
				return PixelFormat{}, err
			}
			order, err := p.tr.ReadReg(registers.PixFormatOrder)
			if err != nil {
				return PixelFormat{}, err
			}
			lanes, err := p.tr.ReadReg(registers.MIPILanes)
			if err != nil {
				return PixelFormat{}, err
			}

			format := PixelFormat{
				Index:    index,
				RawType:  uint8(pixType),
				RawOrder: uint8(order),
				Lanes:    uint8(lanes),
				FourCC:   capability.FourCC(pixType, order),
				Name:     capability.PixTypeName(pixType),
			}
			p.logDebug("pixel format",
				"index", index,
				"type", format.Name,
				"fourcc", format.FourCC,
				"lanes", format.Lanes,
			)

			// The format-index write above is the only thing that
			// associates the following resolution enumeration with
			// this format; the resolution cursor is not re-scoped by
			// any other register.
			p.state = StateEnumeratingResolutions
			resolutions, err := p.enumerateResolutions(ctx, true)
			if err != nil {
				return PixelFormat{}, err
			}
			format.Resolutions = resolutions
			p.state = StateEnumeratingFormats

			return format, nil
		})
}

func (p *Prober) enumerateResolutions(ctx context.Context, withControls bool) ([]Resolution, error) {
	return enumerate(ctx, p.tr, registers.ResolutionIndex, registers.ResolutionIndex,
		p.cfg.IterationCeiling, func(index, _ uint32) (Resolution, error) {
			width, err := p.tr.ReadReg(registers.FormatWidth)
			if err != nil {
				return Resolution{}, err
			}
			height, err := p.tr.ReadReg(registers.FormatHeight)
			if err != nil {
				return Resolution{}, err
			}

			maxFPS, err := p.findFramerateMax(ctx)
			if err != nil {
				return Resolution{}, err
			}

			var controls []Control
			if withControls {
				p.state = StateEnumeratingControls
				controls, err = p.enumerateControls(ctx)
				if err != nil {
					return Resolution{}, err
				}
				p.state = StateEnumeratingResolutions
			}

			return Resolution{
				Index:    index,
				Width:    width,
				Height:   height,
				MaxFPS:   maxFPS,
				Controls: controls,
			}, nil
		})
}

// findFramerateMax scans the control list for the Framerate control
// and returns its max bound, or nil when the resolution has none.
// This scan only reads control ids, so no value reset or settle wait
// is needed.
func (p *Prober) findFramerateMax(ctx context.Context) (*uint32, error) {
	if err := p.tr.WriteReg(registers.CtrlIndex, 0); err != nil {
		return nil, err
	}
	for index := uint32(0); ; index++ {
		if int(index) >= p.cfg.IterationCeiling {
			return nil, ErrEnumerationOverflow
		}
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		if err := p.tr.WriteReg(registers.CtrlIndex, index); err != nil {
			return nil, err
		}
		id, err := p.tr.ReadReg(registers.CtrlID)
		if err != nil {
			return nil, err
		}
		if id == registers.NoDataAvailable {
			return nil, nil
		}
		if id == capability.CtrlFramerate {
			max, err := p.tr.ReadReg(registers.CtrlMax)
			if err != nil {
				return nil, err
			}
			return &max, nil
		}
	}
}

func (p *Prober) enumerateControls(ctx context.Context) ([]Control, error) {
	return enumerate(ctx, p.tr, registers.CtrlIndex, registers.CtrlID,
		p.cfg.IterationCeiling, func(index, id uint32) (Control, error) {
			// The firmware requires the current value to be cleared
			// and a settle wait before the bounds read back reliably.
			if err := p.tr.WriteReg(registers.CtrlValue, 0); err != nil {
				return Control{}, err
			}
			p.sleep(settleDelay)

			max, err := p.tr.ReadReg(registers.CtrlMax)
			if err != nil {
				return Control{}, err
			}
			min, err := p.tr.ReadReg(registers.CtrlMin)
			if err != nil {
				return Control{}, err
			}
			def, err := p.tr.ReadReg(registers.CtrlDef)
			if err != nil {
				return Control{}, err
			}

			return Control{
				ID:      id,
				Name:    capability.ControlName(id),
				Min:     int64(int32(min)),
				Max:     int64(int32(max)),
				Default: int64(int32(def)),
			}, nil
		})
}
