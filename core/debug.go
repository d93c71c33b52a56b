package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// AxisEvent captures a queue or configuration event for post-mortem analysis
type AxisEvent struct {
	EventType uint8  // Event type code
	AxisID    uint8  // Axis registry ID
	Seq       uint32 // Monotonic event counter
	Value1    int32  // Context-dependent value
	Value2    int32  // Context-dependent value
}

// Event type codes
const (
	EvtLoadTarget     = 1 // Target loaded: v1=destination, v2=delta
	EvtQueueExhausted = 2 // NextTarget found nothing to load
	EvtQueueWrap      = 3 // Repeating queue wrapped to its head
	EvtTargetRejected = 4 // Degenerate target: v1=requested position
	EvtQueueFull      = 5 // Target dropped: v1=requested position
	EvtConfigClamped  = 6 // Setter clamped or rejected: v1=requested, v2=stored
	EvtPositionReset  = 7 // SetPosition: v1=old, v2=new
	EvtQueueCleared   = 8 // RemoveTargets: v1=entries dropped
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether DebugPrintln output is active
	debugEnabled bool

	eventRing     [EventRingSize]AxisEvent
	eventRingHead uint8
	eventSeq      uint32
	eventsEnabled = true
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetEventsEnabled turns event capture on or off
func SetEventsEnabled(enabled bool) {
	eventsEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer. It never blocks or
// allocates, but it is not meant for the tick context: callers are the
// queue and configuration paths.
func RecordEvent(eventType, axisID uint8, value1, value2 int32) {
	if !eventsEnabled {
		return
	}
	eventSeq++
	idx := eventRingHead
	eventRing[idx] = AxisEvent{
		EventType: eventType,
		AxisID:    axisID,
		Seq:       eventSeq,
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the captured events, oldest first
func Events() []AxisEvent {
	out := make([]AxisEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns a short label for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtLoadTarget:
		return "LOAD_TARGET"
	case EvtQueueExhausted:
		return "QUEUE_EMPTY"
	case EvtQueueWrap:
		return "QUEUE_WRAP"
	case EvtTargetRejected:
		return "TARGET_REJECTED"
	case EvtQueueFull:
		return "QUEUE_FULL!"
	case EvtConfigClamped:
		return "CONFIG_CLAMPED"
	case EvtPositionReset:
		return "POSITION_RESET"
	case EvtQueueCleared:
		return "QUEUE_CLEARED"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents writes the ring through the debug writer, regardless of
// whether debug output is enabled. Call it on shutdown or after a fault.
func DumpEvents() {
	debugPrintln("[AXIS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[AXIS] " + EventName(evt.EventType) +
			" axis=" + itoa(int64(evt.AxisID)) +
			" seq=" + itoa(int64(evt.Seq)) +
			" v1=" + itoa(int64(evt.Value1)) +
			" v2=" + itoa(int64(evt.Value2)))
	}
	debugPrintln("[AXIS] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = AxisEvent{}
	}
	eventRingHead = 0
	eventSeq = 0
}
