package core

import (
	"errors"
	"testing"
)

// fakeRegister records the masks written to it
type fakeRegister struct {
	name   string
	writes []uint32
}

func (r *fakeRegister) Set(v uint32) {
	r.writes = append(r.writes, v)
}

func (r *fakeRegister) last() uint32 {
	if len(r.writes) == 0 {
		return 0
	}
	return r.writes[len(r.writes)-1]
}

type fakeBank struct {
	set, clr *fakeRegister
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		set: &fakeRegister{name: "set"},
		clr: &fakeRegister{name: "clr"},
	}
}

func (b *fakeBank) resolver() RegisterResolver {
	return func(stepPin, dirPin GPIOPin) (RegisterLines, error) {
		return RegisterLines{
			StepSet:   RegisterLine{Reg: b.set, Mask: 1 << stepPin},
			StepClear: RegisterLine{Reg: b.clr, Mask: 1 << stepPin},
			DirSet:    RegisterLine{Reg: b.set, Mask: 1 << dirPin},
			DirClear:  RegisterLine{Reg: b.clr, Mask: 1 << dirPin},
		}, nil
	}
}

func (b *fakeBank) reset() {
	b.set.writes = nil
	b.clr.writes = nil
}

func TestRegisterPinDriverPolarity(t *testing.T) {
	bank := newFakeBank()
	d := NewRegisterPinDriver("fake", bank.resolver(), PinDriverInfo{MaxStepRate: 500000})
	if err := d.Init(4, 5); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		name     string
		polarity Level
		active   *fakeRegister
		inactive *fakeRegister
	}{
		{"high", High, bank.set, bank.clr},
		{"low", Low, bank.clr, bank.set},
	}

	for _, test := range tests {
		d.Configure(test.polarity, false)

		bank.reset()
		d.StepActive()
		if len(test.active.writes) != 1 || test.active.last() != 1<<4 {
			t.Errorf("%s: StepActive wrote %v to %s", test.name, test.active.writes, test.active.name)
		}

		bank.reset()
		d.StepInactive()
		if len(test.inactive.writes) != 1 || test.inactive.last() != 1<<4 {
			t.Errorf("%s: StepInactive wrote %v to %s", test.name, test.inactive.writes, test.inactive.name)
		}
	}
}

func TestRegisterPinDriverDirection(t *testing.T) {
	bank := newFakeBank()
	d := NewRegisterPinDriver("fake", bank.resolver(), PinDriverInfo{})
	if err := d.Init(4, 5); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		inverse bool
		cw      bool
		want    *fakeRegister
	}{
		{false, true, bank.clr},
		{false, false, bank.set},
		{true, true, bank.set},
		{true, false, bank.clr},
	}

	for _, test := range tests {
		d.Configure(High, test.inverse)
		bank.reset()
		d.SetDirection(test.cw)
		if test.want.last() != 1<<5 {
			t.Errorf("inverse=%v cw=%v: expected dir mask on %s register", test.inverse, test.cw, test.want.name)
		}
	}
}

func TestRegisterPinDriverInitErrors(t *testing.T) {
	d := NewRegisterPinDriver("nil", nil, PinDriverInfo{})
	if err := d.Init(1, 2); !errors.Is(err, ErrNoResolver) {
		t.Errorf("Expected ErrNoResolver, got %v", err)
	}

	partial := func(stepPin, dirPin GPIOPin) (RegisterLines, error) {
		r := &fakeRegister{}
		return RegisterLines{StepSet: RegisterLine{Reg: r, Mask: 1}}, nil
	}
	d = NewRegisterPinDriver("partial", partial, PinDriverInfo{})
	if err := d.Init(1, 2); !errors.Is(err, ErrIncompleteLines) {
		t.Errorf("Expected ErrIncompleteLines, got %v", err)
	}

	errPins := errors.New("pin claimed")
	failing := func(stepPin, dirPin GPIOPin) (RegisterLines, error) {
		return RegisterLines{}, errPins
	}
	d = NewRegisterPinDriver("failing", failing, PinDriverInfo{})
	if err := d.Init(1, 2); !errors.Is(err, errPins) {
		t.Errorf("Expected wrapped resolver error, got %v", err)
	}
}

func TestAxisOnRegisterDriver(t *testing.T) {
	bank := newFakeBank()
	d := NewRegisterPinDriver("fake", bank.resolver(), PinDriverInfo{})
	a, err := NewAxis(6, 7, "reg", d)
	if err != nil {
		t.Fatalf("NewAxis failed: %v", err)
	}
	t.Cleanup(a.Close)

	bank.reset()
	a.SetTargetAbs(-3)
	if bank.set.last() != 1<<7 {
		t.Errorf("Expected dir pin set for dir -1, set writes %v", bank.set.writes)
	}

	h := a.SchedulerHandle()
	bank.reset()
	runToTarget(h)
	if len(bank.set.writes) != 3 || len(bank.clr.writes) != 3 {
		t.Errorf("Expected 3 set and 3 clear writes, got %d/%d", len(bank.set.writes), len(bank.clr.writes))
	}
	if a.GetPosition() != -3 {
		t.Errorf("Expected position -3, got %d", a.GetPosition())
	}
}

func TestDriverInfo(t *testing.T) {
	reg := NewRegisterPinDriver("sio", nil, PinDriverInfo{MaxStepRate: 500000, MinPulseNs: 100})
	info := DriverInfo(reg)
	if info.Name != "sio" || info.MaxStepRate != 500000 {
		t.Errorf("Unexpected register driver info: %+v", info)
	}

	info = DriverInfo(NewDigitalPinDriver(NewMemGPIO()))
	if info.Name != "digital" || info.DirSetupNs != DefaultPinDriverInfo.DirSetupNs {
		t.Errorf("Unexpected default info: %+v", info)
	}
}
