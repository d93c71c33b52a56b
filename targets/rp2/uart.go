//go:build rp2040 || rp2350

package rp2

import (
	"machine"

	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
)

// SetupDebugUART routes core debug output to uart
func SetupDebugUART(uart *machine.UART, tx, rx machine.Pin) error {
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return err
	}
	core.SetDebugWriter(func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	return nil
}

// NewTMCComm configures uart for a TMC2209 bus and returns its register
// transport. Single-wire wiring (TX and RX joined through a resistor)
// echoes every request.
func NewTMCComm(uart *machine.UART, tx, rx machine.Pin, singleWire bool) (*tmcuart.Comm, error) {
	err := uart.Configure(machine.UARTConfig{
		BaudRate: tmcuart.DefaultBaud,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return nil, err
	}
	return tmcuart.NewComm(uart, singleWire), nil
}
