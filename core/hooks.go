package core

// ConfigHooks lets a coordinating wrapper react to per-axis configuration
// changes. A plain axis has no hooks; a SyncGroup member has the group.
//
// Hooks run on the application side (setters, target loads), never
// from DoStep.
type ConfigHooks interface {
	// MaxSpeedChanged is called after SetMaxSpeed stored a new value
	MaxSpeedChanged(a *Axis)

	// PullInOutChanged is called after SetPullInOutSpeed or SetPullInSpeed
	PullInOutChanged(a *Axis)

	// AccelerationChanged is called after SetAcceleration stored a new value
	AccelerationChanged(a *Axis)

	// TargetLoaded is called after a target became the active move, or
	// after a degenerate SetTarget left the axis idle
	TargetLoaded(a *Axis)
}
