//go:build rp2040 || rp2350

package rp2

import (
	"errors"
	"machine"

	"stepaxis/core"
)

var (
	ErrPinRange         = errors.New("rp2: pin out of range")
	ErrPinsNotAdjacent  = errors.New("rp2: dir pin must follow step pin")
	ErrNoStateMachine   = errors.New("rp2: no free PIO state machine")
	ErrPinNotConfigured = errors.New("rp2: pin not configured")
)

// MachineGPIO implements core.GPIODriver with machine.Pin
type MachineGPIO struct {
	configured uint64 // bit per configured pin
}

// NewMachineGPIO creates a machine pin GPIO driver
func NewMachineGPIO() *MachineGPIO {
	return &MachineGPIO{}
}

// ConfigureOutput configures a pin as a digital output, driven low
func (d *MachineGPIO) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= 64 {
		return ErrPinRange
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	d.configured |= 1 << pin
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *MachineGPIO) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= 64 || d.configured&(1<<pin) == 0 {
		return ErrPinNotConfigured
	}
	machine.Pin(pin).Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *MachineGPIO) GetPin(pin core.GPIOPin) (bool, error) {
	if pin >= 64 || d.configured&(1<<pin) == 0 {
		return false, ErrPinNotConfigured
	}
	return machine.Pin(pin).Get(), nil
}
