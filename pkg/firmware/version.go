// Package firmware decodes the packed ISP firmware version register.
package firmware

import "fmt"

// Version is the decoded layout of the 32-bit ISP firmware version
// register:
//
//	bits 31..24  id high byte
//	bits 23..16  id low byte
//	bits 15..9   year since 2000
//	bits  8..5   month
//	bits  4..0   day
//
// Decoding is total: any bit pattern yields a Version, malformed
// dates included. Nonsense input renders as a nonsense date, not an
// error.
type Version struct {
	Raw    uint32 `json:"raw"`
	IDHigh uint8  `json:"id_high"`
	IDLow  uint8  `json:"id_low"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
}

// Decode unpacks a raw ISP firmware version register value.
func Decode(raw uint32) Version {
	id := (raw >> 16) & 0xFFFF
	date := raw & 0xFFFF
	return Version{
		Raw:    raw,
		IDHigh: uint8((id >> 8) & 0xFF),
		IDLow:  uint8(id & 0xFF),
		Year:   2000 + int(date>>9),
		Month:  int((date >> 5) & 0xF),
		Day:    int(date & 0x1F),
	}
}

// String renders the version the way the firmware release notes do,
// e.g. "v1.02 2005/02/03".
func (v Version) String() string {
	return fmt.Sprintf("v%x.%02x %04d/%02d/%02d", v.IDHigh, v.IDLow, v.Year, v.Month, v.Day)
}
