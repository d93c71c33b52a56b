package core

import "stepaxis/mathx"

// SchedulerHandle is the trusted-access surface of an Axis. The motion
// scheduler holds one per axis and is the only party that pulses the
// pins or touches the Bresenham parameters.
//
// Tick-context rules: DoStep/ClearStepPin/SetDir/ToggleDir do no I/O
// beyond pin writes and never allocate. A direction change must precede
// the next DoStep by the driver's setup time (see DriverInfo); the
// handle does not enforce it.
type SchedulerHandle struct {
	ax *Axis
}

// Axis returns the axis behind the handle
func (h *SchedulerHandle) Axis() *Axis {
	return h.ax
}

// DoStep drives the step pin active and advances the position by dir
func (h *SchedulerHandle) DoStep() {
	h.ax.doStep()
}

// ClearStepPin returns the step pin to its inactive level
func (h *SchedulerHandle) ClearStepPin() {
	h.ax.clearStepPin()
}

// SetDir sets the direction (+1/-1) and drives the dir pin
func (h *SchedulerHandle) SetDir(d int32) {
	h.ax.setDir(d)
}

// ToggleDir reverses the direction
func (h *SchedulerHandle) ToggleDir() {
	h.ax.toggleDir()
}

// Dir returns the current direction
func (h *SchedulerHandle) Dir() int32 {
	return h.ax.dir.Load()
}

// Position returns the step counter
func (h *SchedulerHandle) Position() int32 {
	return h.ax.current.Load()
}

// Target returns the loaded destination
func (h *SchedulerHandle) Target() int32 {
	return h.ax.target.Load()
}

// A returns the Bresenham A parameter (travel distance of the loaded move)
func (h *SchedulerHandle) A() int32 { return h.ax.bresA }

// SetA overwrites the Bresenham A parameter
func (h *SchedulerHandle) SetA(v int32) { h.ax.bresA = v }

// B returns the Bresenham accumulator
func (h *SchedulerHandle) B() int32 { return h.ax.bresB }

// SetB overwrites the Bresenham accumulator
func (h *SchedulerHandle) SetB(v int32) { h.ax.bresB = v }

// CurrentSpeed returns the signed speed in steps/s
func (h *SchedulerHandle) CurrentSpeed() int32 {
	return h.ax.currentSpeed.Load()
}

// SetCurrentSpeed records the signed speed in steps/s
func (h *SchedulerHandle) SetCurrentSpeed(v int32) {
	h.ax.currentSpeed.Store(v)
}

// VMax returns the max speed resolved for the loaded target
func (h *SchedulerHandle) VMax() int32 { return h.ax.active.vMax }

// SetVMax overrides the max speed of the loaded move, e.g. to slow a
// follower axis down to the group speed
func (h *SchedulerHandle) SetVMax(v int32) { h.ax.active.vMax = clampSpeed(v) }

// PullIn returns the pull-in speed resolved for the loaded target
func (h *SchedulerHandle) PullIn() int32 { return h.ax.active.vPullIn }

// SetPullIn overrides the pull-in speed of the loaded move
func (h *SchedulerHandle) SetPullIn(v int32) { h.ax.active.vPullIn = clampSpeed(v) }

// PullOut returns the pull-out speed resolved for the loaded target
func (h *SchedulerHandle) PullOut() int32 { return h.ax.active.vPullOut }

// SetPullOut overrides the pull-out speed of the loaded move
func (h *SchedulerHandle) SetPullOut(v int32) { h.ax.active.vPullOut = clampSpeed(v) }

// Acceleration returns the acceleration limit of the loaded move
func (h *SchedulerHandle) Acceleration() uint32 { return h.ax.active.a }

// SetAcceleration overrides the acceleration limit of the loaded move
func (h *SchedulerHandle) SetAcceleration(v uint32) {
	if v == 0 {
		return
	}
	h.ax.active.a = mathx.Min(v, AMax)
}
