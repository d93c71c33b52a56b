//go:build rp2040

package rp2

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"stepaxis/core"
)

// Each state machine shifts 2 bits per FIFO word out to the step pin
// (bit 0) and the dir pin (bit 1). The CPU still decides every edge;
// the PIO only owns the pins, so step and dir must be adjacent.
func buildPinProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),          // 0: pull block
		asm.Out(rp2pio.OutDestPins, 2).Encode(), // 1: out pins, 2
		// .wrap
	}
}

var (
	// RP2040 has 2 PIO blocks with 4 state machines each
	pioAllocations = [2][4]bool{}
)

// allocatePIO returns the first free state machine
func allocatePIO() (uint8, uint8, bool) {
	for pioNum := uint8(0); pioNum < 2; pioNum++ {
		for smNum := uint8(0); smNum < 4; smNum++ {
			if !pioAllocations[pioNum][smNum] {
				pioAllocations[pioNum][smNum] = true
				return pioNum, smNum, true
			}
		}
	}
	return 0, 0, false
}

// freePIO returns a state machine slot to the pool
func freePIO(pioNum, smNum uint8) {
	pioAllocations[pioNum][smNum] = false
}

// PIOPinDriver drives an adjacent step/dir pin pair from a PIO state
// machine
type PIOPinDriver struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pioNum uint8
	smNum  uint8

	stepPin machine.Pin

	// Pin word bits for each logical state
	stepOn, stepOff uint32
	dirCW, dirCCW   uint32
	word            uint32
}

func newPIOPinDriver() (core.PinDriver, error) {
	pioNum, smNum, ok := allocatePIO()
	if !ok {
		return nil, ErrNoStateMachine
	}
	hw := rp2pio.PIO0
	if pioNum == 1 {
		hw = rp2pio.PIO1
	}
	d := &PIOPinDriver{
		pio:    hw,
		sm:     hw.StateMachine(smNum),
		pioNum: pioNum,
		smNum:  smNum,
	}
	d.Configure(core.High, false)
	return d, nil
}

// Init loads the program and hands both pins to the state machine
func (d *PIOPinDriver) Init(stepPin, dirPin core.GPIOPin) error {
	if dirPin != stepPin+1 {
		freePIO(d.pioNum, d.smNum)
		return ErrPinsNotAdjacent
	}
	d.stepPin = machine.Pin(stepPin)
	if !d.sm.TryClaim() {
		freePIO(d.pioNum, d.smNum)
		return ErrNoStateMachine
	}

	program := buildPinProgram()
	offset, err := d.pio.AddProgram(program, -1)
	if err != nil {
		d.sm.Unclaim()
		freePIO(d.pioNum, d.smNum)
		return err
	}

	d.stepPin.Configure(machine.PinConfig{Mode: d.pio.PinMode()})
	machine.Pin(dirPin).Configure(machine.PinConfig{Mode: d.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(d.stepPin, 2)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(1, 0)

	d.sm.Init(offset, cfg)
	d.sm.SetPindirsConsecutive(d.stepPin, 2, true)
	d.sm.SetPinsConsecutive(d.stepPin, 2, false)
	d.sm.SetEnabled(true)
	return nil
}

// Configure maps polarity and inversion to pin word bits
func (d *PIOPinDriver) Configure(polarity core.Level, inverse bool) {
	d.stepOn, d.stepOff = 1, 0
	if polarity == core.Low {
		d.stepOn, d.stepOff = 0, 1
	}
	d.dirCW, d.dirCCW = 0, 2
	if inverse {
		d.dirCW, d.dirCCW = 2, 0
	}
}

func (d *PIOPinDriver) put(word uint32) {
	d.word = word
	for d.sm.IsTxFIFOFull() {
	}
	d.sm.TxPut(word)
}

// StepActive pushes the active step level
func (d *PIOPinDriver) StepActive() {
	d.put(d.word&2 | d.stepOn)
}

// StepInactive pushes the idle step level
func (d *PIOPinDriver) StepInactive() {
	d.put(d.word&2 | d.stepOff)
}

// SetDirection pushes the dir level, keeping the step level
func (d *PIOPinDriver) SetDirection(cw bool) {
	dir := d.dirCCW
	if cw {
		dir = d.dirCW
	}
	d.put(d.word&1 | dir)
}

// GetName returns the driver name
func (d *PIOPinDriver) GetName() string {
	return "pio"
}

// GetInfo returns PIO timing information
func (d *PIOPinDriver) GetInfo() core.PinDriverInfo {
	return core.PinDriverInfo{
		Name:        "pio",
		MaxStepRate: 500000,
		MinPulseNs:  64,
		DirSetupNs:  20,
	}
}
