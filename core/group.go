package core

import (
	"golang.org/x/exp/slices"
)

// GroupEnvelope is the shared limit set of a SyncGroup. It is the input
// the scheduler's ramp works from; computing the ramp is not done here.
type GroupEnvelope struct {
	Lead         *SchedulerHandle // axis with the longest travel
	LeadDistance int32            // A of the lead axis
	VMax         int32            // slowest member max speed (steps/s)
	PullIn       int32            // lowest member pull-in speed (steps/s)
	PullOut      int32            // lowest member pull-out speed (steps/s)
	Acceleration uint32           // lowest member acceleration (steps/s^2)
}

// SyncGroup is the synchronized-group axis variant: it installs itself
// as ConfigHooks on every member and re-ranks the group whenever a
// member's speed, acceleration or target changes.
type SyncGroup struct {
	handles []*SchedulerHandle // membership order
	ranked  []*SchedulerHandle // by travel distance, lead first
	env     GroupEnvelope
}

// NewSyncGroup groups axes. An axis can belong to one group at a time.
func NewSyncGroup(members ...*Axis) (*SyncGroup, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}
	for _, a := range members {
		if a.hooks != nil {
			return nil, ErrAxisGrouped
		}
	}

	g := &SyncGroup{
		handles: make([]*SchedulerHandle, 0, len(members)),
		ranked:  make([]*SchedulerHandle, len(members)),
	}
	for _, a := range members {
		if slices.Contains(g.handles, a.SchedulerHandle()) {
			continue
		}
		g.handles = append(g.handles, a.SchedulerHandle())
		a.SetHooks(g)
	}
	g.ranked = g.ranked[:len(g.handles)]
	g.Recompute()
	return g, nil
}

// Release removes the group's hooks from every member
func (g *SyncGroup) Release() {
	for _, h := range g.handles {
		if h.ax.hooks == ConfigHooks(g) {
			h.ax.SetHooks(nil)
		}
	}
}

// Recompute re-ranks the members and refreshes the shared envelope
func (g *SyncGroup) Recompute() {
	copy(g.ranked, g.handles)
	slices.SortStableFunc(g.ranked, CompareDelta)

	lead := g.ranked[0]
	g.env = GroupEnvelope{
		Lead:         lead,
		LeadDistance: lead.A(),
		VMax:         slices.MinFunc(g.handles, CompareVmin).VMax(),
		PullIn:       slices.MinFunc(g.handles, comparePullIn).PullIn(),
		PullOut:      slices.MinFunc(g.handles, comparePullOut).PullOut(),
		Acceleration: slices.MinFunc(g.handles, CompareAcc).Acceleration(),
	}
}

// Lead returns the member with the longest travel distance
func (g *SyncGroup) Lead() *SchedulerHandle {
	return g.env.Lead
}

// Envelope returns the shared limits computed by the last Recompute
func (g *SyncGroup) Envelope() GroupEnvelope {
	return g.env
}

// Handles returns the members ranked by travel distance, lead first.
// The slice is owned by the group and reordered on every Recompute.
func (g *SyncGroup) Handles() []*SchedulerHandle {
	return g.ranked
}

// Members returns the member axes in the order they were grouped
func (g *SyncGroup) Members() []*Axis {
	out := make([]*Axis, len(g.handles))
	for i, h := range g.handles {
		out[i] = h.ax
	}
	return out
}

// SetTargetsAbs loads one absolute target per member, in membership
// order, and recomputes once. Members with a degenerate target stop
// where they stand. Returns the number of members that got a move.
func (g *SyncGroup) SetTargetsAbs(positions ...int32) int {
	moved := 0
	for i, h := range g.handles {
		if i >= len(positions) {
			break
		}
		h.ax.hooks = nil
		if h.ax.SetTargetAbs(positions[i]) {
			moved++
		}
		h.ax.hooks = g
	}
	g.Recompute()
	return moved
}

// MaxSpeedChanged implements ConfigHooks
func (g *SyncGroup) MaxSpeedChanged(*Axis) { g.Recompute() }

// PullInOutChanged implements ConfigHooks
func (g *SyncGroup) PullInOutChanged(*Axis) { g.Recompute() }

// AccelerationChanged implements ConfigHooks
func (g *SyncGroup) AccelerationChanged(*Axis) { g.Recompute() }

// TargetLoaded implements ConfigHooks
func (g *SyncGroup) TargetLoaded(*Axis) { g.Recompute() }
