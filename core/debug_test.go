package core

import (
	"strings"
	"testing"
)

func TestEventRing(t *testing.T) {
	ClearEvents()
	t.Cleanup(ClearEvents)

	for i := int32(0); i < EventRingSize+5; i++ {
		RecordEvent(EvtLoadTarget, 1, i, 0)
	}

	evts := Events()
	if len(evts) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(evts))
	}
	if evts[0].Value1 != 5 || evts[len(evts)-1].Value1 != EventRingSize+4 {
		t.Errorf("Ring not oldest-first: first=%d last=%d", evts[0].Value1, evts[len(evts)-1].Value1)
	}
	for i := 1; i < len(evts); i++ {
		if evts[i].Seq != evts[i-1].Seq+1 {
			t.Errorf("Sequence gap at %d: %d after %d", i, evts[i].Seq, evts[i-1].Seq)
		}
	}
}

func TestEventsDisabled(t *testing.T) {
	ClearEvents()
	SetEventsEnabled(false)
	t.Cleanup(func() { SetEventsEnabled(true) })

	RecordEvent(EvtQueueFull, 0, 1, 2)
	if len(Events()) != 0 {
		t.Error("Event recorded while capture was disabled")
	}
}

func TestAxisRecordsEvents(t *testing.T) {
	a, _ := newTestAxis(t, testStepPin, testDirPin)
	ClearEvents()

	a.SetTargetAbs(0)
	a.SetMaxSpeed(0)
	a.AddTargetAbs(50, 0, 0, 0)
	a.NextTarget()
	a.NextTarget()

	want := []uint8{EvtTargetRejected, EvtConfigClamped, EvtLoadTarget, EvtQueueExhausted}
	evts := Events()
	if len(evts) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(evts), evts)
	}
	for i, w := range want {
		if evts[i].EventType != w {
			t.Errorf("Event %d: expected %s, got %s", i, EventName(w), EventName(evts[i].EventType))
		}
	}
}

func TestDumpEvents(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	t.Cleanup(func() { SetDebugWriter(nil) })

	ClearEvents()
	RecordEvent(EvtPositionReset, 3, -7, 12)
	DumpEvents()

	if len(lines) != 3 {
		t.Fatalf("Expected header, one event and footer, got %q", lines)
	}
	if !strings.Contains(lines[1], "POSITION_RESET") || !strings.Contains(lines[1], "axis=3") ||
		!strings.Contains(lines[1], "v1=-7") || !strings.Contains(lines[1], "v2=12") {
		t.Errorf("Unexpected dump line: %q", lines[1])
	}
}

func TestDebugPrintlnGated(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	t.Cleanup(func() {
		SetDebugWriter(nil)
		SetDebugEnabled(false)
	})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("Expected only the enabled message, got %q", got)
	}
}
