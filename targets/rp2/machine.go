package rp2

import (
	_ "embed"
	"fmt"

	"stepaxis/config"
)

// MachineYAML is the machine config built into the firmware
//
//go:embed machine.yaml
var MachineYAML []byte

// TMC UART wiring of the built-in machine
const (
	TMCTXPin = 8
	TMCRXPin = 9
)

// LoadMachine parses the built-in machine config and checks that its
// pin driver exists on this platform
func LoadMachine() (*config.MachineConfig, DriverKind, error) {
	cfg, err := config.LoadYAML(MachineYAML)
	if err != nil {
		return nil, 0, err
	}
	kind, err := ParseDriverKind(cfg.Driver)
	if err != nil {
		return nil, 0, fmt.Errorf("machine %s: %w", cfg.Name, err)
	}
	return cfg, kind, nil
}
