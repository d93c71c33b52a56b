package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
)

const (
	DriverDigital = "digital"

	DefaultMicrosteps = 16
)

var (
	ErrUnknownAxis = errors.New("unknown axis")
	ErrNoAxes      = errors.New("no axes configured")
	ErrPinConflict = errors.New("pin used twice")
)

// LoadConfig parses a JSON configuration and returns a MachineConfig
func LoadConfig(jsonData []byte) (*MachineConfig, error) {
	var config MachineConfig

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadYAML parses a YAML configuration and returns a MachineConfig
func LoadYAML(yamlData []byte) (*MachineConfig, error) {
	var config MachineConfig

	if err := yaml.UnmarshalStrict(yamlData, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile reads path, picking the parser from its extension
func LoadFile(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *MachineConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = LoadYAML(data)
	default:
		cfg, err = LoadConfig(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills in missing configuration values with the axis defaults
func applyDefaults(config *MachineConfig) {
	if config.Driver == "" {
		config.Driver = DriverDigital
	}
	if config.UART != nil && config.UART.Baud == 0 {
		config.UART.Baud = tmcuart.DefaultBaud
	}

	for name, axis := range config.Axes {
		if axis.MaxSpeed == 0 {
			axis.MaxSpeed = core.VMaxDefault
		}
		if axis.PullIn == 0 {
			axis.PullIn = core.VPullInOutDefault
		}
		if axis.PullOut == 0 {
			axis.PullOut = axis.PullIn
		}
		if axis.Acceleration == 0 {
			axis.Acceleration = core.ADefault
		}
		if axis.TMC != nil && axis.TMC.Microsteps == 0 {
			axis.TMC.Microsteps = DefaultMicrosteps
		}
		config.Axes[name] = axis
	}
}

// AxisNames returns the configured axis names in sorted order
func (c *MachineConfig) AxisNames() []string {
	names := make([]string, 0, len(c.Axes))
	for name := range c.Axes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Axis returns the named axis configuration
func (c *MachineConfig) Axis(name string) (AxisConfig, error) {
	axis, ok := c.Axes[name]
	if !ok {
		return AxisConfig{}, fmt.Errorf("%w: %s", ErrUnknownAxis, name)
	}
	return axis, nil
}

// Validate checks pin specs and that no pin is claimed twice
func (c *MachineConfig) Validate() error {
	if len(c.Axes) == 0 {
		return ErrNoAxes
	}
	if len(c.Axes) > core.MaxAxes {
		return fmt.Errorf("%w: %d axes configured", core.ErrTooManyAxes, len(c.Axes))
	}

	owner := make(map[core.GPIOPin]string)
	claim := func(axis, role, spec string) error {
		p, err := ParsePin(spec)
		if err != nil {
			return fmt.Errorf("axis %s %s pin: %w", axis, role, err)
		}
		if prev, ok := owner[p.Number]; ok {
			return fmt.Errorf("%w: gpio%d (%s, %s)", ErrPinConflict, p.Number, prev, axis)
		}
		owner[p.Number] = axis
		return nil
	}

	for _, name := range c.AxisNames() {
		axis := c.Axes[name]
		if err := claim(name, "step", axis.StepPin); err != nil {
			return err
		}
		if err := claim(name, "dir", axis.DirPin); err != nil {
			return err
		}
	}
	return nil
}

// DefaultConfig returns a two-axis configuration on gpio2-gpio5
func DefaultConfig() *MachineConfig {
	return &MachineConfig{
		Name:   "default",
		Driver: DriverDigital,
		Axes: map[string]AxisConfig{
			"x": {
				StepPin:      "gpio2",
				DirPin:       "gpio3",
				MaxSpeed:     core.VMaxDefault,
				PullIn:       core.VPullInOutDefault,
				PullOut:      core.VPullInOutDefault,
				Acceleration: core.ADefault,
			},
			"y": {
				StepPin:      "gpio4",
				DirPin:       "gpio5",
				MaxSpeed:     core.VMaxDefault,
				PullIn:       core.VPullInOutDefault,
				PullOut:      core.VPullInOutDefault,
				Acceleration: core.ADefault,
			},
		},
	}
}
