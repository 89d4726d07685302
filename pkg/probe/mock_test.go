package probe

import (
	"fmt"
	"time"

	"github.com/herlein/gocam/pkg/registers"
	"github.com/herlein/gocam/pkg/transport"
)

// fakeControl mirrors one control-list entry of the mock device.
type fakeControl struct {
	id            uint32
	min, max, def uint32
}

type fakeResolution struct {
	width, height uint32
	controls      []fakeControl
}

type fakeFormat struct {
	pixType, order, lanes uint32
	resolutions           []fakeResolution
}

// fakeDevice simulates the camera controller's register interface,
// including the per-category index cursors and sentinel-terminated
// lists. Every operation is appended to ops so tests can assert
// ordering contracts.
type fakeDevice struct {
	deviceID      uint32
	deviceVersion uint32
	sensorID      uint32
	uniqueID      uint32

	softChars  []uint32 // character codes; nil means absent
	softLenRaw *uint32  // overrides the declared length when set

	formats []fakeFormat

	fmtIdx  uint32
	resIdx  uint32
	ctrlIdx uint32
	softIdx uint32

	ops []string
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) WriteReg(reg registers.Reg, value uint32) error {
	d.ops = append(d.ops, fmt.Sprintf("write %04X %d", uint16(reg), value))
	switch reg {
	case registers.PixFormatIndex:
		d.fmtIdx = value
	case registers.ResolutionIndex:
		d.resIdx = value
	case registers.CtrlIndex:
		d.ctrlIdx = value
	case registers.SoftVersionIndex:
		d.softIdx = value
	}
	return nil
}

func (d *fakeDevice) ReadReg(reg registers.Reg) (uint32, error) {
	d.ops = append(d.ops, fmt.Sprintf("read %04X", uint16(reg)))
	switch reg {
	case registers.DeviceID:
		return d.deviceID, nil
	case registers.DeviceVersion:
		return d.deviceVersion, nil
	case registers.FirmwareSensorID:
		return d.sensorID, nil
	case registers.UniqueID:
		return d.uniqueID, nil

	case registers.SoftVersionLen:
		if d.softLenRaw != nil {
			return *d.softLenRaw, nil
		}
		if d.softChars == nil {
			return registers.NoDataAvailable, nil
		}
		return uint32(len(d.softChars)), nil
	case registers.SoftVersionChar:
		if int(d.softIdx) < len(d.softChars) {
			return d.softChars[d.softIdx], nil
		}
		return registers.NoDataAvailable, nil

	case registers.PixFormatIndex:
		if int(d.fmtIdx) >= len(d.formats) {
			return registers.NoDataAvailable, nil
		}
		return d.fmtIdx, nil
	case registers.PixFormatType:
		return d.currentFormat().pixType, nil
	case registers.PixFormatOrder:
		return d.currentFormat().order, nil
	case registers.MIPILanes:
		return d.currentFormat().lanes, nil

	case registers.ResolutionIndex:
		if int(d.resIdx) >= len(d.currentFormat().resolutions) {
			return registers.NoDataAvailable, nil
		}
		return d.resIdx, nil
	case registers.FormatWidth:
		return d.currentResolution().width, nil
	case registers.FormatHeight:
		return d.currentResolution().height, nil

	case registers.CtrlID:
		if int(d.ctrlIdx) >= len(d.currentResolution().controls) {
			return registers.NoDataAvailable, nil
		}
		return d.currentControl().id, nil
	case registers.CtrlMin:
		return d.currentControl().min, nil
	case registers.CtrlMax:
		return d.currentControl().max, nil
	case registers.CtrlDef:
		return d.currentControl().def, nil
	}
	return 0, nil
}

func (d *fakeDevice) currentFormat() fakeFormat {
	if int(d.fmtIdx) < len(d.formats) {
		return d.formats[d.fmtIdx]
	}
	return fakeFormat{}
}

func (d *fakeDevice) currentResolution() fakeResolution {
	format := d.currentFormat()
	if int(d.resIdx) < len(format.resolutions) {
		return format.resolutions[d.resIdx]
	}
	return fakeResolution{}
}

func (d *fakeDevice) currentControl() fakeControl {
	res := d.currentResolution()
	if int(d.ctrlIdx) < len(res.controls) {
		return res.controls[d.ctrlIdx]
	}
	return fakeControl{}
}

// brokenConn fails every register operation with a transport error.
type brokenConn struct{}

func (brokenConn) Close() error { return nil }

func (brokenConn) ReadReg(reg registers.Reg) (uint32, error) {
	return 0, &transport.Error{Op: transport.OpRead, Bus: 9, Reg: reg, Err: fmt.Errorf("nack")}
}

func (brokenConn) WriteReg(reg registers.Reg, value uint32) error {
	return &transport.Error{Op: transport.OpWrite, Bus: 9, Reg: reg, Err: fmt.Errorf("nack")}
}

// flakyTransport fails the first failures operations with a transport
// error, then delegates.
type flakyTransport struct {
	tr       transport.RegisterReadWriter
	failures int
	calls    int
}

func (f *flakyTransport) ReadReg(reg registers.Reg) (uint32, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, &transport.Error{Op: transport.OpRead, Bus: 1, Reg: reg, Err: fmt.Errorf("timeout")}
	}
	return f.tr.ReadReg(reg)
}

func (f *flakyTransport) WriteReg(reg registers.Reg, value uint32) error {
	f.calls++
	if f.calls <= f.failures {
		return &transport.Error{Op: transport.OpWrite, Bus: 1, Reg: reg, Err: fmt.Errorf("timeout")}
	}
	return f.tr.WriteReg(reg, value)
}

// newTestDevice builds the fake most tests probe against: two pixel
// formats, the first with two resolutions carrying a Framerate
// control and a couple of bounds-bearing controls.
func newTestDevice() *fakeDevice {
	return &fakeDevice{
		deviceID:      0x03,
		deviceVersion: 0x02,
		sensorID:      0x0036,
		uniqueID:      0x01020A43,
		softChars:     strToCodes("1.0.2"),
		formats: []fakeFormat{
			{
				pixType: 0x2B, order: 0x3, lanes: 2, // RAW10 RGGB
				resolutions: []fakeResolution{
					{
						width: 1920, height: 1080,
						controls: []fakeControl{
							{id: 0x981906, min: 1, max: 60, def: 30},          // Framerate
							{id: 0x980911, min: 10, max: 5000, def: 100},      // Exposure
							{id: 0x123456, min: 0xFFFFFF9C, max: 100, def: 0}, // unmapped, min -100
						},
					},
					{
						width: 1280, height: 720,
						controls: []fakeControl{
							{id: 0x981906, min: 1, max: 120, def: 60}, // Framerate
						},
					},
				},
			},
			{
				pixType: 0x30, order: 0x0, lanes: 2, // JPEG
				resolutions: []fakeResolution{
					{width: 640, height: 480},
				},
			},
		},
	}
}

func strToCodes(s string) []uint32 {
	codes := make([]uint32, len(s))
	for i := 0; i < len(s); i++ {
		codes[i] = uint32(s[i])
	}
	return codes
}

// silence the settle and backoff waits in tests
func quiet(p *Prober) *Prober {
	p.sleep = func(time.Duration) {}
	return p
}
