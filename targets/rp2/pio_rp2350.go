//go:build rp2350

package rp2

import "stepaxis/core"

// The PIO assembler fork targets RP2040 only; RP2350 axes use SIO
func newPIOPinDriver() (core.PinDriver, error) {
	return nil, ErrNoStateMachine
}
