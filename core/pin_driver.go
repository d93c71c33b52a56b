package core

// PinDriver is the hardware capability an Axis pulses through.
// Implementations either write pins through a generic digital-output
// driver or poke pre-resolved set/clear registers directly.
//
// StepActive, StepInactive and SetDirection are called from the tick
// context and must not block or allocate.
type PinDriver interface {
	// Init claims and configures the step and direction pins as outputs
	Init(stepPin, dirPin GPIOPin) error

	// Configure selects the active step level and whether the
	// direction pin is inverted. Called at construction and whenever
	// the axis polarity or rotation sense changes.
	Configure(polarity Level, inverse bool)

	// StepActive drives the step pin to its active level
	StepActive()

	// StepInactive returns the step pin to its inactive level
	StepInactive()

	// SetDirection drives the direction pin.
	// cw: true for dir == +1
	SetDirection(cw bool)

	// GetName returns the driver implementation name
	GetName() string
}

// PinDriverInfo describes timing characteristics of a pin driver.
// The scheduler uses it to honour the step driver's setup times.
type PinDriverInfo struct {
	Name        string
	MaxStepRate uint32 // Maximum steps/second
	MinPulseNs  uint32 // Minimum step pulse width (ns)
	DirSetupNs  uint32 // Direction-to-step setup time (ns)
}

// InfoProvider is implemented by pin drivers that know their timing.
type InfoProvider interface {
	GetInfo() PinDriverInfo
}

// DefaultPinDriverInfo is returned by DriverInfo for drivers that do
// not report timing. Values cover common step/dir drivers (A4988, DRV8825, TMC22xx).
var DefaultPinDriverInfo = PinDriverInfo{
	Name:        "generic",
	MaxStepRate: 100000,
	MinPulseNs:  2000,
	DirSetupNs:  650,
}

// DriverInfo returns the timing information of d, or DefaultPinDriverInfo
func DriverInfo(d PinDriver) PinDriverInfo {
	if p, ok := d.(InfoProvider); ok {
		return p.GetInfo()
	}
	info := DefaultPinDriverInfo
	info.Name = d.GetName()
	return info
}
