package periphgpio

import (
	"errors"
	"testing"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"

	"stepaxis/core"
)

// fakeBoard exposes gpiotest pins by registry name
func fakeBoard(nums ...int) (Lookup, map[string]*gpiotest.Pin) {
	pins := make(map[string]*gpiotest.Pin)
	for _, n := range nums {
		p := &gpiotest.Pin{N: PinName(core.GPIOPin(n)), Num: n, L: gpio.High}
		pins[p.N] = p
	}
	return func(name string) gpio.PinIO {
		if p, ok := pins[name]; ok {
			return p
		}
		return nil
	}, pins
}

func TestConfigureOutput(t *testing.T) {
	lookup, pins := fakeBoard(2, 3)
	d := New(lookup)

	if err := d.ConfigureOutput(2); err != nil {
		t.Fatalf("ConfigureOutput failed: %v", err)
	}
	if pins["GPIO2"].L != gpio.Low {
		t.Error("Configured pin should be driven low")
	}
	if err := d.ConfigureOutput(9); !errors.Is(err, ErrNoPin) {
		t.Errorf("Expected ErrNoPin, got %v", err)
	}
	if err := d.ConfigureOutput(MaxPins); !errors.Is(err, ErrPinRange) {
		t.Errorf("Expected ErrPinRange, got %v", err)
	}
	if err := d.SetPin(3, true); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestAxisOnPeriphPins(t *testing.T) {
	lookup, pins := fakeBoard(2, 3)
	d := New(lookup)

	a, err := core.NewAxis(2, 3, "periph", core.NewDigitalPinDriver(d))
	if err != nil {
		t.Fatalf("NewAxis failed: %v", err)
	}
	t.Cleanup(a.Close)

	a.SetTargetAbs(-1)
	if pins["GPIO3"].L != gpio.High {
		t.Error("Dir pin should be high for dir -1")
	}

	h := a.SchedulerHandle()
	h.DoStep()
	if v, _ := d.GetPin(2); !v {
		t.Error("Step pin should be high after DoStep")
	}
	h.ClearStepPin()
	if pins["GPIO2"].L != gpio.Low {
		t.Error("Step pin should be low after ClearStepPin")
	}
	if a.GetPosition() != -1 {
		t.Errorf("Expected position -1, got %d", a.GetPosition())
	}
}
