// Package rp2 provides the RP2040/RP2350 pin drivers for axes: machine
// pin writes, pre-resolved SIO registers and a PIO state machine.
package rp2

import (
	"errors"
	"fmt"
)

// MaxSIOPin is the last pin reachable through the low SIO bank
const MaxSIOPin = 31

// DriverKind selects the pin driver of a machine config
type DriverKind uint8

const (
	KindDigital DriverKind = iota // machine.Pin writes
	KindSIO                       // SIO set/clear registers
	KindPIO                       // PIO state machine, RP2040 only
)

var ErrUnknownDriver = errors.New("rp2: unknown pin driver")

// ParseDriverKind maps a config driver name to its kind. An empty name
// means digital.
func ParseDriverKind(name string) (DriverKind, error) {
	switch name {
	case "", "digital":
		return KindDigital, nil
	case "sio":
		return KindSIO, nil
	case "pio":
		return KindPIO, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// String returns the config name of k
func (k DriverKind) String() string {
	switch k {
	case KindSIO:
		return "sio"
	case KindPIO:
		return "pio"
	default:
		return "digital"
	}
}
