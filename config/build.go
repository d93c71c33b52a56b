package config

import (
	"errors"
	"fmt"

	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
)

var ErrProgramTarget = errors.New("program target rejected")

// DriverFactory returns the pin driver for the named axis
type DriverFactory func(axis string) (core.PinDriver, error)

// Build creates one configured axis per entry, in AxisNames order, and
// queues its program. On error every axis created so far is closed.
func Build(cfg *MachineConfig, newDriver DriverFactory) (axes []*core.Axis, err error) {
	defer func() {
		if err != nil {
			for _, a := range axes {
				a.Close()
			}
			axes = nil
		}
	}()

	for _, name := range cfg.AxisNames() {
		var a *core.Axis
		a, err = buildAxis(name, cfg.Axes[name], newDriver)
		if err != nil {
			return axes, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}

func buildAxis(name string, ac AxisConfig, newDriver DriverFactory) (*core.Axis, error) {
	step, err := ParsePin(ac.StepPin)
	if err != nil {
		return nil, fmt.Errorf("axis %s step pin: %w", name, err)
	}
	dir, err := ParsePin(ac.DirPin)
	if err != nil {
		return nil, fmt.Errorf("axis %s dir pin: %w", name, err)
	}

	driver, err := newDriver(name)
	if err != nil {
		return nil, fmt.Errorf("axis %s: %w", name, err)
	}
	a, err := core.NewAxis(step.Number, dir.Number, name, driver)
	if err != nil {
		return nil, fmt.Errorf("axis %s: %w", name, err)
	}

	polarity := core.High
	if step.Invert {
		polarity = core.Low
	}
	a.SetStepPinPolarity(polarity).
		SetInverseRotation(dir.Invert).
		SetMaxSpeed(ac.MaxSpeed).
		SetPullInOutSpeed(ac.PullIn, ac.PullOut).
		SetAcceleration(ac.Acceleration)
	if ac.Position != 0 {
		a.SetPosition(ac.Position)
	}

	if err := queueProgram(a, ac.Program); err != nil {
		a.Close()
		return nil, fmt.Errorf("axis %s: %w", name, err)
	}
	return a, nil
}

// queueProgram appends the program targets in order
func queueProgram(a *core.Axis, p *ProgramConfig) error {
	if p == nil {
		return nil
	}
	for i, t := range p.Targets {
		var ok bool
		if t.Relative {
			ok = a.AddTargetRel(t.Position, t.Speed, t.PullIn, t.PullOut)
		} else {
			ok = a.AddTargetAbs(t.Position, t.Speed, t.PullIn, t.PullOut)
		}
		if !ok {
			return fmt.Errorf("%w: #%d (position %d)", ErrProgramTarget, i, t.Position)
		}
	}
	if p.Repeat {
		a.RepeatTargets()
	}
	return nil
}

// Settings converts the TMC section to driver chip settings
func (t *TMCConfig) Settings() tmcuart.Settings {
	s := tmcuart.DefaultSettings()
	if t.Microsteps != 0 {
		s.Microsteps = t.Microsteps
	}
	if t.Interpolate != nil {
		s.Interpolate = *t.Interpolate
	}
	s.SpreadCycle = t.SpreadCycle
	s.InverseShaft = t.InvertShaft
	s.RunCurrent = t.RunCurrent
	s.HoldCurrent = t.HoldCurrent
	s.HoldDelay = t.HoldDelay
	return s
}
