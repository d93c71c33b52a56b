package serial

import (
	"io"

	"stepaxis/drivers/tmcuart"
)

// Port is a UART link to one or more TMC step drivers.
// Implementations:
// - Native serial (github.com/tarm/serial)
// - In-memory fakes in tests
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input, dropping stale echoes and replies
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate. TMC2209 auto-bauds between 9600 and 500k.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the UART speed used for TMC drivers
const DefaultBaud = tmcuart.DefaultBaud

// DefaultConfig returns a configuration suitable for a TMC2209 UART bus
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 50, // a register reply takes under 1ms at 115200
	}
}
