package core

// Single-axis step/dir primitive driven by an external multi-axis scheduler.
// The axis never times anything itself: the scheduler decides when to
// pulse and calls DoStep/ClearStepPin through the SchedulerHandle.

import (
	"sync/atomic"

	"stepaxis/mathx"
)

const (
	VMaxMax           = 300000 // largest speed possible (steps/s)
	AMax              = 500000 // speed up to 500kHz within 1 s (steps/s^2)
	VMaxDefault       = 800    // 1 rev/s in quarter-step mode
	VPullInOutDefault = 100
	ADefault          = 2500 // ~0.3s to reach the default speed

	// Max axes in the registry
	MaxAxes = 16
)

// envelope holds the speed and acceleration limits of an axis.
// All values are positive magnitudes.
type envelope struct {
	vMax     int32
	vPullIn  int32
	vPullOut int32
	a        uint32
}

func defaultEnvelope() envelope {
	return envelope{
		vMax:     VMaxDefault,
		vPullIn:  VPullInOutDefault,
		vPullOut: VPullInOutDefault,
		a:        ADefault,
	}
}

// Axis is one physical stepper motor behind a step and a direction pin
type Axis struct {
	id      uint8
	name    string
	stepPin GPIOPin
	dirPin  GPIOPin
	driver  PinDriver

	polarity Level
	inverse  bool

	// Shared with the tick context
	current      atomic.Int32
	currentSpeed atomic.Int32
	target       atomic.Int32
	dir          atomic.Int32

	// Bresenham parameters, owned by the scheduler
	bresA int32
	bresB int32

	config envelope // written by the setters
	active envelope // resolved when a target is loaded

	targets targetQueue
	hooks   ConfigHooks
	handle  SchedulerHandle
}

// Global axis registry
var axes [MaxAxes]*Axis

// GetAxis returns an axis by registry ID
func GetAxis(id uint8) *Axis {
	if id >= MaxAxes {
		return nil
	}
	return axes[id]
}

// NewAxis creates an axis on the given pins and registers it. The step
// pin is left inactive and the direction set to +1.
func NewAxis(stepPin, dirPin GPIOPin, name string, driver PinDriver) (*Axis, error) {
	if driver == nil {
		return nil, ErrNoPinDriver
	}
	if stepPin == dirPin {
		return nil, ErrSamePin
	}

	slot := -1
	for i, a := range axes {
		if a == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil, ErrTooManyAxes
	}

	if err := driver.Init(stepPin, dirPin); err != nil {
		return nil, err
	}

	a := &Axis{
		id:       uint8(slot),
		name:     name,
		stepPin:  stepPin,
		dirPin:   dirPin,
		driver:   driver,
		polarity: High,
		config:   defaultEnvelope(),
		active:   defaultEnvelope(),
	}
	a.handle.ax = a

	driver.Configure(a.polarity, a.inverse)
	a.clearStepPin()
	a.setDir(1)

	axes[slot] = a
	DebugPrintln("[AXIS] " + name + " registered: id=" + itoa(int64(slot)) +
		" step=" + itoa(int64(stepPin)) + " dir=" + itoa(int64(dirPin)) +
		" driver=" + driver.GetName())
	return a, nil
}

// Close drops all queued targets, leaves the step pin inactive and frees
// the registry slot
func (a *Axis) Close() {
	a.RemoveTargets()
	a.clearStepPin()
	if axes[a.id] == a {
		axes[a.id] = nil
	}
}

// ID returns the registry ID
func (a *Axis) ID() uint8 {
	return a.id
}

// Name returns the diagnostic name
func (a *Axis) Name() string {
	return a.name
}

// Pins returns the step and dir pin numbers
func (a *Axis) Pins() (stepPin, dirPin GPIOPin) {
	return a.stepPin, a.dirPin
}

// Driver returns the pin driver
func (a *Axis) Driver() PinDriver {
	return a.driver
}

// clampSpeed turns a signed speed request into a magnitude in [1, VMaxMax]
func clampSpeed(v int32) int32 {
	return int32(mathx.Clamp(mathx.Abs(int64(v)), 1, VMaxMax))
}

func (a *Axis) idle() bool {
	return a.target.Load() == a.current.Load()
}

// SetMaxSpeed sets the default maximum speed (steps/s) for targets loaded
// after the call. The sign is ignored; 0 is rejected.
func (a *Axis) SetMaxSpeed(speed int32) *Axis {
	if speed == 0 {
		RecordEvent(EvtConfigClamped, a.id, speed, a.config.vMax)
		return a
	}
	v := a.checkSpeed(speed, a.config.vMax)
	a.config.vMax = v
	if a.idle() {
		a.active.vMax = v
	}
	if a.hooks != nil {
		a.hooks.MaxSpeedChanged(a)
	}
	return a
}

// SetPullInSpeed sets pull-in and pull-out speed to the same value
func (a *Axis) SetPullInSpeed(speed int32) *Axis {
	return a.SetPullInOutSpeed(speed, speed)
}

// SetPullInOutSpeed sets the speeds (steps/s) at which a move may start
// and stop without a ramp. A zero argument leaves that side unchanged.
func (a *Axis) SetPullInOutSpeed(pullIn, pullOut int32) *Axis {
	a.config.vPullIn = a.checkSpeed(pullIn, a.config.vPullIn)
	a.config.vPullOut = a.checkSpeed(pullOut, a.config.vPullOut)
	if a.idle() {
		a.active.vPullIn = a.config.vPullIn
		a.active.vPullOut = a.config.vPullOut
	}
	if a.hooks != nil {
		a.hooks.PullInOutChanged(a)
	}
	return a
}

// checkSpeed returns the clamped magnitude of v, or old for v == 0,
// recording an event when the request was not stored as given
func (a *Axis) checkSpeed(v, old int32) int32 {
	if v == 0 {
		RecordEvent(EvtConfigClamped, a.id, v, old)
		return old
	}
	c := clampSpeed(v)
	if int64(c) != mathx.Abs(int64(v)) {
		RecordEvent(EvtConfigClamped, a.id, v, c)
	}
	return c
}

// SetAcceleration sets the acceleration limit (steps/s^2), capped at AMax.
// 0 is rejected.
func (a *Axis) SetAcceleration(acc uint32) *Axis {
	if acc == 0 {
		RecordEvent(EvtConfigClamped, a.id, 0, int32(a.config.a))
		return a
	}
	v := mathx.Min(acc, AMax)
	if v != acc {
		RecordEvent(EvtConfigClamped, a.id, mathx.SaturateInt32(int64(acc)), int32(v))
	}
	a.config.a = v
	if a.idle() {
		a.active.a = v
	}
	if a.hooks != nil {
		a.hooks.AccelerationChanged(a)
	}
	return a
}

// SetStepPinPolarity selects the active step level: High for positive
// pulses, Low for negative ones. The step pin is driven inactive.
func (a *Axis) SetStepPinPolarity(p Level) *Axis {
	a.polarity = p
	a.driver.Configure(a.polarity, a.inverse)
	a.clearStepPin()
	return a
}

// SetInverseRotation flips which dir pin level means dir == +1. The dir
// pin is re-driven for the current direction.
func (a *Axis) SetInverseRotation(b bool) *Axis {
	a.inverse = b
	a.driver.Configure(a.polarity, a.inverse)
	a.setDir(a.dir.Load())
	return a
}

// MaxSpeed returns the configured default maximum speed
func (a *Axis) MaxSpeed() int32 {
	return a.config.vMax
}

// PullInSpeed returns the configured default pull-in speed
func (a *Axis) PullInSpeed() int32 {
	return a.config.vPullIn
}

// PullOutSpeed returns the configured default pull-out speed
func (a *Axis) PullOutSpeed() int32 {
	return a.config.vPullOut
}

// Acceleration returns the configured acceleration limit
func (a *Axis) Acceleration() uint32 {
	return a.config.a
}

// StepPinPolarity returns the active step level
func (a *Axis) StepPinPolarity() Level {
	return a.polarity
}

// InverseRotation reports whether the dir pin is inverted
func (a *Axis) InverseRotation() bool {
	return a.inverse
}

// GetPosition returns the current position in steps.
// Safe to call while the tick context is stepping.
func (a *Axis) GetPosition() int32 {
	return a.current.Load()
}

// SetPosition overwrites the position counter (homing, zeroing). An idle
// axis stays idle: its target follows the new position.
func (a *Axis) SetPosition(pos int32) {
	state := disableInterrupts()
	old := a.current.Load()
	wasIdle := a.target.Load() == old
	a.current.Store(pos)
	if wasIdle {
		a.target.Store(pos)
	}
	restoreInterrupts(state)
	RecordEvent(EvtPositionReset, a.id, old, pos)
}

// Dir returns the current direction, +1 or -1
func (a *Axis) Dir() int32 {
	return a.dir.Load()
}

// Target returns the loaded destination
func (a *Axis) Target() int32 {
	return a.target.Load()
}

// CurrentSpeed returns the speed last written by the scheduler
func (a *Axis) CurrentSpeed() int32 {
	return a.currentSpeed.Load()
}

// SetHooks installs configuration hooks. nil makes the axis plain again.
func (a *Axis) SetHooks(h ConfigHooks) {
	a.hooks = h
}

// Hooks returns the installed configuration hooks, if any
func (a *Axis) Hooks() ConfigHooks {
	return a.hooks
}

// SchedulerHandle returns the trusted-access handle for the scheduler
func (a *Axis) SchedulerHandle() *SchedulerHandle {
	return &a.handle
}

// doStep drives the step pin active and advances the position by dir
func (a *Axis) doStep() {
	a.driver.StepActive()
	a.current.Add(a.dir.Load())
}

// clearStepPin returns the step pin to its inactive level
func (a *Axis) clearStepPin() {
	a.driver.StepInactive()
}

// setDir records the direction and drives the dir pin. Anything but a
// negative value means +1.
func (a *Axis) setDir(d int32) {
	if d < 0 {
		d = -1
	} else {
		d = 1
	}
	a.dir.Store(d)
	a.driver.SetDirection(d == 1)
}

func (a *Axis) toggleDir() {
	a.setDir(-a.dir.Load())
}
