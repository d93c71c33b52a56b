//go:build rp2040 || rp2350

package rp2

import (
	"device/rp"
	"machine"

	"stepaxis/core"
)

// SIO pulses through the single-cycle IO set/clear registers: one store
// per edge, no read-modify-write.
var sioInfo = core.PinDriverInfo{
	MaxStepRate: 500000,
	MinPulseNs:  100,
	DirSetupNs:  20,
}

// resolveSIO configures both pins as SIO outputs and returns their
// set/clear lines
func resolveSIO(stepPin, dirPin core.GPIOPin) (core.RegisterLines, error) {
	if stepPin > MaxSIOPin || dirPin > MaxSIOPin {
		return core.RegisterLines{}, ErrPinRange
	}
	for _, pin := range []core.GPIOPin{stepPin, dirPin} {
		p := machine.Pin(pin)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}

	stepMask := uint32(1) << stepPin
	dirMask := uint32(1) << dirPin
	return core.RegisterLines{
		StepSet:   core.RegisterLine{Reg: &rp.SIO.GPIO_OUT_SET, Mask: stepMask},
		StepClear: core.RegisterLine{Reg: &rp.SIO.GPIO_OUT_CLR, Mask: stepMask},
		DirSet:    core.RegisterLine{Reg: &rp.SIO.GPIO_OUT_SET, Mask: dirMask},
		DirClear:  core.RegisterLine{Reg: &rp.SIO.GPIO_OUT_CLR, Mask: dirMask},
	}, nil
}

// NewSIOPinDriver returns a register pin driver on the SIO bank
func NewSIOPinDriver() *core.RegisterPinDriver {
	return core.NewRegisterPinDriver("sio", resolveSIO, sioInfo)
}

// NewPinDriver returns the pin driver named by a machine config:
// "digital" (or empty), "sio" or "pio" (RP2040 only)
func NewPinDriver(kind string) (core.PinDriver, error) {
	k, err := ParseDriverKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindSIO:
		return NewSIOPinDriver(), nil
	case KindPIO:
		return newPIOPinDriver()
	default:
		return core.NewDigitalPinDriver(NewMachineGPIO()), nil
	}
}
