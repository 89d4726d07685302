package probe

import "github.com/herlein/gocam/pkg/transport"

// I2COpener opens the register channel over /dev/i2c-N at the fixed
// camera client address. It is the Opener used by the command-line
// tools.
func I2COpener(bus int) (Conn, error) {
	return transport.OpenI2C(bus)
}
