package core

import "stepaxis/mathx"

const (
	// Max targets held by one axis
	TargetQueueSize = 32
)

// Target is a single waypoint. A zero Speed, PullIn or PullOut means
// "use the axis default when the target is loaded".
type Target struct {
	Position int32 // absolute position, or signed delta when !Absolute
	Speed    int32 // steps/s override
	PullIn   int32 // steps/s override
	PullOut  int32 // steps/s override
	Absolute bool
}

// resolve returns the destination of t for an axis standing at from
func (t Target) resolve(from int32) int32 {
	if t.Absolute {
		return t.Position
	}
	return mathx.SaturateInt32(int64(from) + int64(t.Position))
}

// targetQueue is a fixed-capacity, insertion-ordered list of targets
// with a load cursor. Entries are stored by value: once appended they
// are never modified, only dropped by clear.
type targetQueue struct {
	entries [TargetQueueSize]Target
	count   uint8 // valid entries
	index   uint8 // next entry to load
	repeat  bool
}

// push appends t, returning false if the queue is full
func (q *targetQueue) push(t Target) bool {
	if q.count >= TargetQueueSize {
		return false
	}
	q.entries[q.count] = t
	q.count++
	return true
}

// next returns the entry at the cursor and advances it, wrapping to the
// head when repeating
func (q *targetQueue) next() (t Target, wrapped, ok bool) {
	if q.index >= q.count {
		if !q.repeat || q.count == 0 {
			return Target{}, false, false
		}
		q.index = 0
		wrapped = true
	}
	t = q.entries[q.index]
	q.index++
	return t, wrapped, true
}

// pending returns the entries not yet loaded in this pass
func (q *targetQueue) pending() []Target {
	return q.entries[q.index:q.count]
}

// clear drops every entry and leaves repeat mode
func (q *targetQueue) clear() uint8 {
	dropped := q.count
	for i := uint8(0); i < q.count; i++ {
		q.entries[i] = Target{}
	}
	q.count = 0
	q.index = 0
	q.repeat = false
	return dropped
}

// SetTargetAbs drops the queue and loads pos as the only target.
// Returns false if pos is the current position; a move in flight is
// then dropped and the axis left idle where it stands.
func (a *Axis) SetTargetAbs(pos int32) bool {
	return a.setTarget(Target{Position: pos, Absolute: true})
}

// SetTargetRel drops the queue and loads current+delta as the only
// target. Returns false for delta 0, leaving the axis idle like
// SetTargetAbs.
func (a *Axis) SetTargetRel(delta int32) bool {
	return a.setTarget(Target{Position: delta})
}

func (a *Axis) setTarget(t Target) bool {
	a.RemoveTargets()
	state := disableInterrupts()
	cur := a.current.Load()
	if t.resolve(cur) != cur {
		restoreInterrupts(state)
		a.loadTarget(t)
		return true
	}
	a.target.Store(cur)
	a.bresA = 0
	a.active = a.config
	restoreInterrupts(state)

	RecordEvent(EvtTargetRejected, a.id, t.Position, cur)
	if a.hooks != nil {
		a.hooks.TargetLoaded(a)
	}
	return false
}

// AddTargetAbs appends an absolute target. Zero overrides fall back to
// the axis defaults at load time. Returns false when pos is where the
// axis will already be once the pending targets are done, or when the
// queue is full.
func (a *Axis) AddTargetAbs(pos, speed, pullIn, pullOut int32) bool {
	return a.addTarget(Target{Position: pos, Speed: speed, PullIn: pullIn, PullOut: pullOut, Absolute: true})
}

// AddTargetRel appends a relative target, resolved against the position
// at load time. Returns false for delta 0 or a full queue.
func (a *Axis) AddTargetRel(delta, speed, pullIn, pullOut int32) bool {
	return a.addTarget(Target{Position: delta, Speed: speed, PullIn: pullIn, PullOut: pullOut})
}

func (a *Axis) addTarget(t Target) bool {
	if (t.Absolute && t.Position == a.projectedEnd()) || (!t.Absolute && t.Position == 0) {
		RecordEvent(EvtTargetRejected, a.id, t.Position, a.current.Load())
		return false
	}
	if !a.targets.push(t) {
		RecordEvent(EvtQueueFull, a.id, t.Position, TargetQueueSize)
		return false
	}
	return true
}

// projectedEnd is where the axis stands after the loaded target and all
// pending queue entries
func (a *Axis) projectedEnd() int32 {
	pos := a.target.Load()
	for _, t := range a.targets.pending() {
		pos = t.resolve(pos)
	}
	return pos
}

// NextTarget loads the next queued target. Returns false when the queue
// is exhausted and not repeating.
func (a *Axis) NextTarget() bool {
	t, wrapped, ok := a.targets.next()
	if !ok {
		RecordEvent(EvtQueueExhausted, a.id, int32(a.targets.count), a.current.Load())
		return false
	}
	if wrapped {
		RecordEvent(EvtQueueWrap, a.id, int32(a.targets.count), a.current.Load())
	}
	a.loadTarget(t)
	return true
}

// RepeatTargets makes NextTarget cycle back to the head of the queue
// after the last entry
func (a *Axis) RepeatTargets() {
	a.targets.repeat = true
}

// Repeating reports whether the queue wraps
func (a *Axis) Repeating() bool {
	return a.targets.repeat
}

// PendingTargets returns the number of targets left before the queue is
// exhausted or wraps
func (a *Axis) PendingTargets() int {
	return len(a.targets.pending())
}

// QueuedTargets returns a copy of every queued target in insertion order
func (a *Axis) QueuedTargets() []Target {
	out := make([]Target, a.targets.count)
	copy(out, a.targets.entries[:a.targets.count])
	return out
}

// RemoveTargets drops all queued targets and leaves repeat mode. The
// loaded target is kept: a move in flight becomes the last move.
func (a *Axis) RemoveTargets() {
	if dropped := a.targets.clear(); dropped > 0 {
		RecordEvent(EvtQueueCleared, a.id, int32(dropped), a.target.Load())
	}
}

// loadTarget makes t the active move: resolves the destination against
// the current position, resolves the speed envelope, sets A to the
// travel distance and points the direction at the destination.
func (a *Axis) loadTarget(t Target) {
	env := a.config
	if t.Speed != 0 {
		env.vMax = clampSpeed(t.Speed)
	}
	if t.PullIn != 0 {
		env.vPullIn = clampSpeed(t.PullIn)
	}
	if t.PullOut != 0 {
		env.vPullOut = clampSpeed(t.PullOut)
	}

	state := disableInterrupts()
	cur := a.current.Load()
	dest := t.resolve(cur)
	delta := int64(dest) - int64(cur)
	a.active = env
	a.bresA = mathx.SaturateInt32(mathx.Abs(delta))
	a.target.Store(dest)
	if delta < 0 {
		a.setDir(-1)
	} else {
		a.setDir(1)
	}
	restoreInterrupts(state)

	RecordEvent(EvtLoadTarget, a.id, dest, mathx.SaturateInt32(delta))
	if a.hooks != nil {
		a.hooks.TargetLoaded(a)
	}
}
