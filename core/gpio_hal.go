package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// Level is a digital pin level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// String returns "HIGH" or "LOW"
func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// GPIODriver is the generic digital-output interface used by
// DigitalPinDriver. Platform-specific implementations handle the hardware.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	// Returns error if pin is invalid or already in use
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)
}
