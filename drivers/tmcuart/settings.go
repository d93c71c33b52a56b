package tmcuart

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers/tmc2209"
)

// ChipVersion is the IOIN version field of a TMC2209
const ChipVersion = 0x21

var (
	ErrMicrosteps = errors.New("tmcuart: microsteps must be a power of two up to 256")
	ErrVersion    = errors.New("tmcuart: unexpected chip version")
)

// Settings is the part of the driver chip configuration that matters to
// an axis: microstep resolution, motor direction and chopper mode.
type Settings struct {
	Microsteps   uint16 // microsteps per full step, 1..256
	InverseShaft bool   // reverse motor direction in the chip
	Interpolate  bool   // interpolate to 256 microsteps
	SpreadCycle  bool   // spreadCycle instead of stealthChop

	RunCurrent  uint8 // IRUN, 0..31; 0 keeps the chip value
	HoldCurrent uint8 // IHOLD, 0..31
	HoldDelay   uint8 // IHOLDDELAY, 0..15
}

// DefaultSettings are 16 microsteps, interpolated, stealthChop
func DefaultSettings() Settings {
	return Settings{
		Microsteps:  16,
		Interpolate: true,
	}
}

// Mres converts microsteps per full step to the CHOPCONF MRES field
func Mres(microsteps uint16) (uint32, error) {
	if microsteps == 0 || microsteps > 256 || microsteps&(microsteps-1) != 0 {
		return 0, fmt.Errorf("%w: %d", ErrMicrosteps, microsteps)
	}
	exp := tmc2209.SetMicrostepsPerStep(microsteps)
	return uint32(8 - exp), nil
}

// MicrostepsFromMres is the inverse of Mres
func MicrostepsFromMres(mres uint32) uint16 {
	if mres > 8 {
		mres = 8
	}
	return 256 >> mres
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Gconf builds the GCONF register for s. UART control is enabled so
// MRES and the current registers take effect.
func (s Settings) Gconf() *tmc2209.Gconf {
	g := tmc2209.NewGconf()
	g.PdnDisable = 1
	g.MstepRegSelect = 1
	g.MultistepFilt = 1
	g.Shaft = bit(s.InverseShaft)
	g.EnSpreadcycle = bit(s.SpreadCycle)
	g.Pack()
	return g
}

// Chopconf builds the CHOPCONF register for s with the chip's
// recommended chopper timing
func (s Settings) Chopconf() (*tmc2209.Chopconf, error) {
	mres, err := Mres(s.Microsteps)
	if err != nil {
		return nil, err
	}
	c := tmc2209.NewChopconf()
	c.Toff = 3
	c.Hstrt = 5
	c.Hend = 0
	c.Tbl = 2
	c.Mres = mres
	c.Intpol = bit(s.Interpolate)
	c.Pack()
	return c, nil
}

// IholdIrun builds the IHOLD_IRUN register, or nil when RunCurrent is 0
func (s Settings) IholdIrun() *tmc2209.IholdIrun {
	if s.RunCurrent == 0 {
		return nil
	}
	r := tmc2209.NewIholdIrun()
	r.Irun = uint32(s.RunCurrent)
	r.Ihold = uint32(s.HoldCurrent)
	r.Iholddelay = uint32(s.HoldDelay)
	r.Pack()
	return r
}

// Apply writes s to the driver at node address addr
func Apply(comm tmc2209.RegisterComm, addr uint8, s Settings) error {
	chop, err := s.Chopconf()
	if err != nil {
		return err
	}

	regs := []tmc2209.Register{s.Gconf(), chop}
	if cur := s.IholdIrun(); cur != nil {
		regs = append(regs, cur)
	}
	for _, r := range regs {
		if err := tmc2209.WriteRegister(comm, r.GetAddress(), addr, r.Pack()); err != nil {
			return fmt.Errorf("tmcuart: node %d: %w", addr, err)
		}
	}
	return nil
}

// ReadSettings reads GCONF and CHOPCONF back from the driver
func ReadSettings(comm tmc2209.RegisterComm, addr uint8) (Settings, error) {
	var s Settings

	v, err := comm.ReadRegister(tmc2209.GCONF, addr)
	if err != nil {
		return s, err
	}
	g := tmc2209.NewGconf()
	g.Bytes = v
	g.Unpack(v)
	s.InverseShaft = g.Shaft == 1
	s.SpreadCycle = g.EnSpreadcycle == 1

	v, err = comm.ReadRegister(tmc2209.CHOPCONF, addr)
	if err != nil {
		return s, err
	}
	c := tmc2209.NewChopconf()
	c.Bytes = v
	c.Unpack(v)
	s.Microsteps = MicrostepsFromMres(c.Mres)
	s.Interpolate = c.Intpol == 1
	return s, nil
}

// Verify reads IOIN and checks the chip version
func Verify(comm tmc2209.RegisterComm, addr uint8) (uint8, error) {
	v, err := comm.ReadRegister(tmc2209.IOIN, addr)
	if err != nil {
		return 0, err
	}
	ioin := tmc2209.NewIoin()
	ioin.Bytes = v
	ioin.Unpack(v)
	if ioin.Version != ChipVersion {
		return uint8(ioin.Version), fmt.Errorf("%w: 0x%02x", ErrVersion, ioin.Version)
	}
	return uint8(ioin.Version), nil
}
