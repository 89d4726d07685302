// Package capability translates the raw pixel-type, component-order
// and control-id codes the camera controller reports into canonical
// names and FOURCC codes.
package capability

// Pixel type codes as reported by the PixFormatType register. These
// follow the MIPI CSI-2 data type values for the raw and YUV formats.
const (
	PixTypeYUV420_8  = 0x18
	PixTypeYUV420_10 = 0x19
	PixTypeYUV422_8  = 0x1E
	PixTypeRAW8      = 0x2A
	PixTypeRAW10     = 0x2B
	PixTypeRAW12     = 0x2C
	PixTypeJPEG      = 0x30
)

// Unknown is the fallback name for any unmapped code. Unmapped
// entries are reported with this name, never dropped.
const Unknown = "Unknown"

// Lenient FOURCC defaults: when the order code for a known pixel
// class is unmapped the decoder still emits a usable FOURCC rather
// than failing the format.
const (
	DefaultBayerFourCC = "RGGB"
	DefaultYUVFourCC   = "YUYV"
	JPEGFourCC         = "MJPG"
	UnknownFourCC      = "UNKN"
)

var pixTypeNames = map[uint32]string{
	PixTypeRAW8:      "RAW8",
	PixTypeRAW10:     "RAW10",
	PixTypeRAW12:     "RAW12",
	PixTypeYUV420_8:  "YUV420_8BIT",
	PixTypeYUV420_10: "YUV420_10BIT",
	PixTypeYUV422_8:  "YUV422_8BIT",
	PixTypeJPEG:      "JPEG",
}

var bayerOrders = map[uint32]string{
	0x0: "BGGR",
	0x1: "GBRG",
	0x2: "GRBG",
	0x3: "RGGB",
	0x4: "MONO",
}

var yuvOrders = map[uint32]string{
	0x0: "YUYV",
	0x1: "YVYU",
	0x2: "UYVY",
	0x3: "VYUY",
}

var controlNames = map[uint32]string{
	0x980900: "brightness",
	0x980901: "contrast",
	0x980902: "Saturation",
	0x98090C: "AWBMode",
	0x98090E: "RedGain",
	0x98090F: "BlueGain",
	0x980911: "Exposure",
	0x980913: "gain",
	0x980914: "horizontal_flip",
	0x980915: "vertical_flip",
	0x98091A: "ColorTemperature",
	0x98091B: "sharpness",
	0x98091C: "backlight_compensation",
	0x981901: "TriggerMode",
	0x981906: "Framerate",
	0x98190E: "strobe_width",
	0x98190F: "strobe_shift",
	0x9A0901: "AEEnable",
	0x9A090A: "Focus",
	0x9A0919: "ExposureMetering",
	0x9E0901: "vertical_blanking",
	0x9E0902: "horizontal_blanking",
	0x9E0903: "AnalogueGain",
	0x9F0902: "pixel_rate",
}

// CtrlFramerate is the control id carrying the per-resolution maximum
// frame rate in its max bound.
const CtrlFramerate uint32 = 0x981906

// IsRawType reports whether the pixel type code is a raw Bayer class.
func IsRawType(pixType uint32) bool {
	return pixType == PixTypeRAW8 || pixType == PixTypeRAW10 || pixType == PixTypeRAW12
}

// IsYUVType reports whether the pixel type code is a YUV class.
func IsYUVType(pixType uint32) bool {
	return pixType == PixTypeYUV420_8 || pixType == PixTypeYUV420_10 || pixType == PixTypeYUV422_8
}

// PixTypeName returns the canonical name for a pixel type code, or
// Unknown for unmapped codes.
func PixTypeName(pixType uint32) string {
	if name, ok := pixTypeNames[pixType]; ok {
		return name
	}
	return Unknown
}

// OrderName returns the component-order name for a pixel type/order
// pair. The second return is false when the pixel type has no order
// semantics (JPEG and unmapped types). An unmapped order code for a
// known class reports Unknown.
func OrderName(pixType, order uint32) (string, bool) {
	switch {
	case IsRawType(pixType):
		if name, ok := bayerOrders[order]; ok {
			return name, true
		}
		return Unknown, true
	case IsYUVType(pixType):
		if name, ok := yuvOrders[order]; ok {
			return name, true
		}
		return Unknown, true
	}
	return "", false
}

// FourCC derives the four-character code for a pixel type/order pair.
// Unmapped order codes fall back to a default for the class so a
// format always gets some FOURCC.
func FourCC(pixType, order uint32) string {
	switch {
	case IsYUVType(pixType):
		if cc, ok := yuvOrders[order]; ok {
			return cc
		}
		return DefaultYUVFourCC
	case IsRawType(pixType):
		if cc, ok := bayerOrders[order]; ok {
			return cc
		}
		return DefaultBayerFourCC
	case pixType == PixTypeJPEG:
		return JPEGFourCC
	}
	return UnknownFourCC
}

// ControlName returns the human-readable name for a control id, or
// Unknown for unmapped ids. Callers render the raw hexadecimal id
// alongside so unmapped controls stay identifiable.
func ControlName(id uint32) string {
	if name, ok := controlNames[id]; ok {
		return name
	}
	return Unknown
}
