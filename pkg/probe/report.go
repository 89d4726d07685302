package probe

import (
	"fmt"

	"github.com/herlein/gocam/pkg/firmware"
)

// Control describes one tunable control exposed under a resolution.
// Unmapped control ids keep the name "Unknown" alongside the raw id;
// they are never dropped.
type Control struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
	Default int64  `json:"default"`
}

func (c Control) String() string {
	return fmt.Sprintf("ID: 0x%06X, control_name: %s MAX: %d, MIN: %d, DEF: %d",
		c.ID, c.Name, c.Max, c.Min, c.Default)
}

// Resolution describes one frame size of a pixel format. Index is the
// device-assigned ordinal: ascending but not guaranteed contiguous.
// MaxFPS is nil when the device exposes no Framerate control for this
// resolution.
type Resolution struct {
	Index    uint32    `json:"index"`
	Width    uint32    `json:"width"`
	Height   uint32    `json:"height"`
	MaxFPS   *uint32   `json:"max_fps,omitempty"`
	Controls []Control `json:"controls,omitempty"`
}

// PixelFormat describes one entry of the pixel format list together
// with the resolutions enumerated under it.
type PixelFormat struct {
	Index       uint32       `json:"index"`
	RawType     uint8        `json:"raw_type"`
	RawOrder    uint8        `json:"raw_order"`
	Lanes       uint8        `json:"lanes"`
	FourCC      string       `json:"fourcc"`
	Name        string       `json:"name"`
	Resolutions []Resolution `json:"resolutions,omitempty"`
}

// DeviceReport is the aggregated result of one full probe. A report
// is built fresh per probe; nothing persists across probes.
type DeviceReport struct {
	DeviceID        uint32           `json:"device_id"`
	DeviceVersion   uint32           `json:"device_version"`
	SensorID        uint32           `json:"sensor_id"`
	Firmware        firmware.Version `json:"firmware"`
	SoftwareVersion string           `json:"software_version"`
	PixelFormats    []PixelFormat    `json:"pixel_formats,omitempty"`
}
