package core

import "fmt"

// DigitalPinDriver pulses an axis through a generic GPIODriver.
// Used on platforms without pre-resolved register access.
type DigitalPinDriver struct {
	gpio     GPIODriver
	stepPin  GPIOPin
	dirPin   GPIOPin
	polarity Level
	inverse  bool
}

// NewDigitalPinDriver creates a pin driver writing through g
func NewDigitalPinDriver(g GPIODriver) *DigitalPinDriver {
	return &DigitalPinDriver{gpio: g, polarity: High}
}

// Init configures both pins as outputs
func (d *DigitalPinDriver) Init(stepPin, dirPin GPIOPin) error {
	if d.gpio == nil {
		return ErrNoGPIODriver
	}
	if err := d.gpio.ConfigureOutput(stepPin); err != nil {
		return fmt.Errorf("step pin %d: %w", stepPin, err)
	}
	if err := d.gpio.ConfigureOutput(dirPin); err != nil {
		return fmt.Errorf("dir pin %d: %w", dirPin, err)
	}
	d.stepPin = stepPin
	d.dirPin = dirPin
	return nil
}

// Configure sets step polarity and direction inversion
func (d *DigitalPinDriver) Configure(polarity Level, inverse bool) {
	d.polarity = polarity
	d.inverse = inverse
}

// StepActive drives the step pin to the configured polarity.
// Write errors are dropped: there is nothing the tick context can do with them.
func (d *DigitalPinDriver) StepActive() {
	_ = d.gpio.SetPin(d.stepPin, bool(d.polarity))
}

// StepInactive drives the step pin to the opposite of the polarity
func (d *DigitalPinDriver) StepInactive() {
	_ = d.gpio.SetPin(d.stepPin, !bool(d.polarity))
}

// SetDirection drives the dir pin. dir == +1 maps to the inverse flag
// level, so a non-inverted axis runs +1 with the pin low.
func (d *DigitalPinDriver) SetDirection(cw bool) {
	level := d.inverse
	if !cw {
		level = !level
	}
	_ = d.gpio.SetPin(d.dirPin, level)
}

// GetName returns the driver name
func (d *DigitalPinDriver) GetName() string {
	return "digital"
}
