// Package periphgpio drives axis pins on Linux boards through periph.io.
package periphgpio

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"stepaxis/core"
)

// MaxPins is the highest pin number + 1 the driver can hold
const MaxPins = 64

var (
	ErrNoPin         = errors.New("periphgpio: no such pin")
	ErrPinRange      = errors.New("periphgpio: pin out of range")
	ErrNotConfigured = errors.New("periphgpio: pin not configured")
)

// Lookup resolves a pin name to a periph pin, nil if it does not exist
type Lookup func(name string) gpio.PinIO

// Driver is a core.GPIODriver over periph pins. Pins are resolved once
// in ConfigureOutput so SetPin is an array index and a register write.
type Driver struct {
	lookup Lookup
	pins   [MaxPins]gpio.PinIO
}

var _ core.GPIODriver = (*Driver)(nil)

// Open initializes the periph host drivers and returns a Driver using
// the global pin registry
func Open() (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphgpio: host init: %w", err)
	}
	return New(gpioreg.ByName), nil
}

// New returns a Driver resolving pins through lookup
func New(lookup Lookup) *Driver {
	return &Driver{lookup: lookup}
}

// PinName is the registry name of a pin number
func PinName(pin core.GPIOPin) string {
	return "GPIO" + strconv.Itoa(int(pin))
}

// ConfigureOutput resolves pin and drives it low
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	if pin >= MaxPins {
		return fmt.Errorf("%w: %d", ErrPinRange, pin)
	}
	p := d.lookup(PinName(pin))
	if p == nil {
		return fmt.Errorf("%w: %s", ErrNoPin, PinName(pin))
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("periphgpio: %s: %w", p.Name(), err)
	}
	d.pins[pin] = p
	return nil
}

// SetPin drives a configured pin
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	if pin >= MaxPins || d.pins[pin] == nil {
		return ErrNotConfigured
	}
	return d.pins[pin].Out(gpio.Level(value))
}

// GetPin reads back a configured pin
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin >= MaxPins || d.pins[pin] == nil {
		return false, ErrNotConfigured
	}
	return d.pins[pin].Read() == gpio.High, nil
}
