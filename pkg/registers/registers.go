package registers

// Reg is a 16-bit register address on the camera controller.
// Addresses are formed as a region base OR'd with an offset within
// the region. Every register is read and written as a 32-bit value.
type Reg uint16

// Register regions
const (
	DeviceRegBase    Reg = 0x0100 // identity and version registers
	PixFormatRegBase Reg = 0x0200 // pixel format enumeration
	FormatRegBase    Reg = 0x0300 // resolution enumeration
	CtrlRegBase      Reg = 0x0400 // control enumeration
	IPCRegBase       Reg = 0x0600 // host/firmware mailbox (reserved)
)

// Device identity registers
const (
	StreamOn         = DeviceRegBase | 0x0000
	DeviceVersion    = DeviceRegBase | 0x0001
	SensorID         = DeviceRegBase | 0x0002
	DeviceID         = DeviceRegBase | 0x0003
	FirmwareSensorID = DeviceRegBase | 0x0005
	UniqueID         = DeviceRegBase | 0x0006 // packed ISP firmware version
	SystemIdle       = DeviceRegBase | 0x0007
)

// Software version string registers. The string is exposed one
// character at a time: write an index, read the character code.
const (
	SoftVersionLen   = DeviceRegBase | 0x00F0
	SoftVersionIndex = DeviceRegBase | 0x00F1
	SoftVersionChar  = DeviceRegBase | 0x00F2
)

// Pixel format registers
const (
	PixFormatIndex = PixFormatRegBase | 0x0000
	PixFormatType  = PixFormatRegBase | 0x0001
	PixFormatOrder = PixFormatRegBase | 0x0002
	MIPILanes      = PixFormatRegBase | 0x0003
)

// Resolution registers
const (
	ResolutionIndex = FormatRegBase | 0x0000
	FormatWidth     = FormatRegBase | 0x0001
	FormatHeight    = FormatRegBase | 0x0002
)

// Control registers
const (
	CtrlIndex = CtrlRegBase | 0x0000
	CtrlID    = CtrlRegBase | 0x0001
	CtrlMin   = CtrlRegBase | 0x0002
	CtrlMax   = CtrlRegBase | 0x0003
	CtrlDef   = CtrlRegBase | 0x0005
	CtrlValue = CtrlRegBase | 0x0006
)

// NoDataAvailable is returned from an enumeration register when the
// written index is past the end of the list. It is reserved and never
// valid data, so it must be checked before any other interpretation
// of a read.
const NoDataAvailable uint32 = 0xFFFFFFFE

// DefaultI2CAddress is the fixed I2C client address of the camera
// controller.
const DefaultI2CAddress = 0x0C
