package core

import "fmt"

// Register is a memory-mapped write-to-act register such as a GPIO
// set/clear/bit-band address. device/rp's volatile.Register32 satisfies it.
type Register interface {
	Set(value uint32)
}

// RegisterLine is one register plus the mask that actuates a single pin
type RegisterLine struct {
	Reg  Register
	Mask uint32
}

func (l RegisterLine) assert() {
	l.Reg.Set(l.Mask)
}

// RegisterLines holds the four pre-resolved lines of an axis
type RegisterLines struct {
	StepSet   RegisterLine // drives step pin high
	StepClear RegisterLine // drives step pin low
	DirSet    RegisterLine // drives dir pin high
	DirClear  RegisterLine // drives dir pin low
}

// RegisterResolver maps pins to register lines and configures them as outputs
type RegisterResolver func(stepPin, dirPin GPIOPin) (RegisterLines, error)

// RegisterPinDriver pulses an axis by writing pre-resolved registers.
// Polarity and inversion are folded into which line is written, so the
// hot path is a single store.
type RegisterPinDriver struct {
	name    string
	resolve RegisterResolver
	lines   RegisterLines
	info    PinDriverInfo

	stepActive   RegisterLine
	stepInactive RegisterLine
	dirCW        RegisterLine
	dirCCW       RegisterLine
}

// NewRegisterPinDriver creates a register pin driver using resolve at Init
func NewRegisterPinDriver(name string, resolve RegisterResolver, info PinDriverInfo) *RegisterPinDriver {
	info.Name = name
	return &RegisterPinDriver{name: name, resolve: resolve, info: info}
}

// Init resolves the register lines for both pins
func (d *RegisterPinDriver) Init(stepPin, dirPin GPIOPin) error {
	if d.resolve == nil {
		return fmt.Errorf("%s: %w", d.name, ErrNoResolver)
	}
	lines, err := d.resolve(stepPin, dirPin)
	if err != nil {
		return fmt.Errorf("%s: resolve pins %d/%d: %w", d.name, stepPin, dirPin, err)
	}
	if lines.StepSet.Reg == nil || lines.StepClear.Reg == nil ||
		lines.DirSet.Reg == nil || lines.DirClear.Reg == nil {
		return fmt.Errorf("%s: %w", d.name, ErrIncompleteLines)
	}
	d.lines = lines
	d.Configure(High, false)
	return nil
}

// Configure swaps set/clear lines according to polarity and inversion
func (d *RegisterPinDriver) Configure(polarity Level, inverse bool) {
	if polarity == High {
		d.stepActive, d.stepInactive = d.lines.StepSet, d.lines.StepClear
	} else {
		d.stepActive, d.stepInactive = d.lines.StepClear, d.lines.StepSet
	}
	if inverse {
		d.dirCW, d.dirCCW = d.lines.DirSet, d.lines.DirClear
	} else {
		d.dirCW, d.dirCCW = d.lines.DirClear, d.lines.DirSet
	}
}

// StepActive writes the active step line
func (d *RegisterPinDriver) StepActive() {
	d.stepActive.assert()
}

// StepInactive writes the inactive step line
func (d *RegisterPinDriver) StepInactive() {
	d.stepInactive.assert()
}

// SetDirection writes the CW or CCW line
func (d *RegisterPinDriver) SetDirection(cw bool) {
	if cw {
		d.dirCW.assert()
	} else {
		d.dirCCW.assert()
	}
}

// GetName returns the driver name
func (d *RegisterPinDriver) GetName() string {
	return d.name
}

// GetInfo returns the timing information given at construction
func (d *RegisterPinDriver) GetInfo() PinDriverInfo {
	return d.info
}
