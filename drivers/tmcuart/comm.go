// Package tmcuart talks to TMC2209 step drivers over their single-wire
// UART. Register layouts and the datagram CRC come from
// tinygo.org/x/drivers/tmc2209; this package supplies the byte transport
// for any io.ReadWriter so the same code runs on a host serial port or
// a microcontroller UART.
package tmcuart

import (
	"errors"
	"fmt"
	"io"

	"tinygo.org/x/drivers/tmc2209"
)

const (
	syncByte     = 0x05
	writeFlag    = 0x80
	masterAddr   = 0xFF // node address in every reply
	writeLen     = 8
	readReqLen   = 4
	readReplyLen = 8

	// MaxNodeAddr is the highest address settable with MS1/MS2
	MaxNodeAddr = 3

	// DefaultBaud is a safe bus speed; the chip auto-bauds
	DefaultBaud = 115200
)

var (
	ErrCRC         = errors.New("tmcuart: reply CRC mismatch")
	ErrBadReply    = errors.New("tmcuart: unexpected reply")
	ErrEchoMangled = errors.New("tmcuart: echo does not match request")
	ErrNodeAddr    = errors.New("tmcuart: node address out of range")
)

// Comm implements tmc2209.RegisterComm over a byte stream. driverIndex
// is the UART node address (0-3) of the target chip.
type Comm struct {
	rw io.ReadWriter

	// Echo is set when TX and RX share one wire, so every request is
	// read back before the reply
	Echo bool

	buf [writeLen + readReplyLen]byte
}

var _ tmc2209.RegisterComm = (*Comm)(nil)

// NewComm creates a register transport on rw
func NewComm(rw io.ReadWriter, echo bool) *Comm {
	return &Comm{rw: rw, Echo: echo}
}

// WriteRegister sends a write datagram. TMC2209 does not acknowledge
// writes; use IFCNT to confirm them.
func (c *Comm) WriteRegister(register uint8, value uint32, driverIndex uint8) error {
	if driverIndex > MaxNodeAddr {
		return ErrNodeAddr
	}
	req := c.buf[:writeLen]
	req[0] = syncByte
	req[1] = driverIndex
	req[2] = register | writeFlag
	req[3] = byte(value >> 24)
	req[4] = byte(value >> 16)
	req[5] = byte(value >> 8)
	req[6] = byte(value)
	req[7] = tmc2209.CalculateCRC(req[:7])

	if _, err := c.rw.Write(req); err != nil {
		return fmt.Errorf("tmcuart: write reg 0x%02x: %w", register, err)
	}
	return c.skipEcho(req)
}

// ReadRegister sends a read request and waits for the 8-byte reply
func (c *Comm) ReadRegister(register uint8, driverIndex uint8) (uint32, error) {
	if driverIndex > MaxNodeAddr {
		return 0, ErrNodeAddr
	}
	req := c.buf[:readReqLen]
	req[0] = syncByte
	req[1] = driverIndex
	req[2] = register &^ writeFlag
	req[3] = tmc2209.CalculateCRC(req[:3])

	if _, err := c.rw.Write(req); err != nil {
		return 0, fmt.Errorf("tmcuart: read reg 0x%02x: %w", register, err)
	}
	if err := c.skipEcho(req); err != nil {
		return 0, err
	}

	reply := c.buf[writeLen:]
	if _, err := io.ReadFull(c.rw, reply); err != nil {
		return 0, fmt.Errorf("tmcuart: reply reg 0x%02x: %w", register, err)
	}
	if reply[7] != tmc2209.CalculateCRC(reply[:7]) {
		return 0, ErrCRC
	}
	if reply[0] != syncByte || reply[1] != masterAddr || reply[2] != register&^writeFlag {
		return 0, fmt.Errorf("%w: % x", ErrBadReply, reply[:3])
	}
	return uint32(reply[3])<<24 | uint32(reply[4])<<16 | uint32(reply[5])<<8 | uint32(reply[6]), nil
}

// skipEcho consumes the copy of req a single-wire bus reflects back
func (c *Comm) skipEcho(req []byte) error {
	if !c.Echo {
		return nil
	}
	var echo [writeLen]byte
	if _, err := io.ReadFull(c.rw, echo[:len(req)]); err != nil {
		return fmt.Errorf("tmcuart: echo: %w", err)
	}
	for i := range req {
		if echo[i] != req[i] {
			return ErrEchoMangled
		}
	}
	return nil
}
