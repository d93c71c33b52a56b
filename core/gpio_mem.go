package core

import "errors"

// MemGPIOPins is the number of pins a MemGPIO models
const MemGPIOPins = 64

var errMemPinRange = errors.New("pin out of range")

// MemGPIO is an in-memory GPIODriver. It backs dry runs and tests and
// counts rising edges per pin so pulse trains can be checked.
type MemGPIO struct {
	configured [MemGPIOPins]bool
	levels     [MemGPIOPins]bool
	rises      [MemGPIOPins]uint32
	writes     [MemGPIOPins]uint32
}

// NewMemGPIO creates an in-memory GPIO bank with all pins low
func NewMemGPIO() *MemGPIO {
	return &MemGPIO{}
}

// ConfigureOutput marks pin as an output
func (m *MemGPIO) ConfigureOutput(pin GPIOPin) error {
	if pin >= MemGPIOPins {
		return errMemPinRange
	}
	m.configured[pin] = true
	return nil
}

// SetPin records the new level
func (m *MemGPIO) SetPin(pin GPIOPin, value bool) error {
	if pin >= MemGPIOPins {
		return errMemPinRange
	}
	if !m.configured[pin] {
		return ErrPinNotConfigured
	}
	if value && !m.levels[pin] {
		m.rises[pin]++
	}
	m.levels[pin] = value
	m.writes[pin]++
	return nil
}

// GetPin returns the last written level
func (m *MemGPIO) GetPin(pin GPIOPin) (bool, error) {
	if pin >= MemGPIOPins {
		return false, errMemPinRange
	}
	return m.levels[pin], nil
}

// Level returns the last written level, false for unknown pins
func (m *MemGPIO) Level(pin GPIOPin) bool {
	v, _ := m.GetPin(pin)
	return v
}

// Rises returns the number of low-to-high transitions on pin
func (m *MemGPIO) Rises(pin GPIOPin) uint32 {
	if pin >= MemGPIOPins {
		return 0
	}
	return m.rises[pin]
}

// Writes returns the number of SetPin calls on pin
func (m *MemGPIO) Writes(pin GPIOPin) uint32 {
	if pin >= MemGPIOPins {
		return 0
	}
	return m.writes[pin]
}
