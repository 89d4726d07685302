package transport

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/herlein/gocam/pkg/registers"
)

// ioctl request and message flags from linux/i2c-dev.h
const (
	i2cRdwr   = 0x0707
	i2cMRead  = 0x0001 // I2C_M_RD
	i2cMWrite = 0x0000
)

// i2c_msg from linux/i2c.h
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   uintptr
}

type i2cRdwrIoctlData struct {
	msgs  uintptr
	nmsgs uint32
}

// I2C drives the camera controller through a /dev/i2c-N character
// device using combined I2C_RDWR transactions. Register addresses and
// values travel big-endian on the wire: a read writes the 2-byte
// register address and reads back 4 bytes, a write sends the 2-byte
// address followed by the 4-byte value in a single message.
type I2C struct {
	f    *os.File
	bus  int
	addr uint16
}

// OpenI2C opens the I2C bus with the given number and targets the
// fixed camera client address.
func OpenI2C(bus int) (*I2C, error) {
	return OpenI2CAddr(bus, registers.DefaultI2CAddress)
}

// OpenI2CAddr opens the I2C bus with an explicit client address.
func OpenI2CAddr(bus int, addr uint16) (*I2C, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &Error{Op: OpOpen, Bus: bus, Err: err}
	}
	return &I2C{f: f, bus: bus, addr: addr}, nil
}

// Bus returns the bus number this device was opened on.
func (d *I2C) Bus() int { return d.bus }

// Close releases the bus file descriptor.
func (d *I2C) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

// ReadReg reads a 32-bit register value using a write/read combined
// transaction so no other client transaction can split the pair.
func (d *I2C) ReadReg(reg registers.Reg) (uint32, error) {
	var regBuf [2]byte
	var valBuf [4]byte
	binary.BigEndian.PutUint16(regBuf[:], uint16(reg))

	msgs := [2]i2cMsg{
		{addr: d.addr, flags: i2cMWrite, len: 2, buf: uintptr(unsafe.Pointer(&regBuf[0]))},
		{addr: d.addr, flags: i2cMRead, len: 4, buf: uintptr(unsafe.Pointer(&valBuf[0]))},
	}
	if err := d.rdwr(msgs[:]); err != nil {
		return 0, &Error{Op: OpRead, Bus: d.bus, Reg: reg, Err: err}
	}
	return binary.BigEndian.Uint32(valBuf[:]), nil
}

// WriteReg writes a 32-bit register value.
func (d *I2C) WriteReg(reg registers.Reg, value uint32) error {
	var buf [6]byte
	binary.BigEndian.PutUint16(buf[0:2], uint16(reg))
	binary.BigEndian.PutUint32(buf[2:6], value)

	msgs := [1]i2cMsg{
		{addr: d.addr, flags: i2cMWrite, len: 6, buf: uintptr(unsafe.Pointer(&buf[0]))},
	}
	if err := d.rdwr(msgs[:]); err != nil {
		return &Error{Op: OpWrite, Bus: d.bus, Reg: reg, Err: err}
	}
	return nil
}

func (d *I2C) rdwr(msgs []i2cMsg) error {
	if d.f == nil {
		return os.ErrClosed
	}
	data := i2cRdwrIoctlData{
		msgs:  uintptr(unsafe.Pointer(&msgs[0])),
		nmsgs: uint32(len(msgs)),
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), i2cRdwr, uintptr(unsafe.Pointer(&data)))
	if errno != 0 {
		return errno
	}
	return nil
}
