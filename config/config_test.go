package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stepaxis/core"
)

const testJSON = `{
	"name": "bench",
	"axes": {
		"x": {
			"step_pin": "gpio2",
			"dir_pin": "!gpio3",
			"max_speed": 4000,
			"acceleration": 20000,
			"program": {
				"targets": [
					{"position": 100},
					{"position": 250, "speed": 1200}
				],
				"repeat": true
			}
		},
		"y": {
			"step_pin": "!gpio4",
			"dir_pin": "gpio5",
			"pull_in": 50,
			"tmc": {"address": 1}
		}
	}
}`

const testYAML = `
name: bench
driver: digital
uart:
  device: /dev/ttyUSB0
  echo: true
axes:
  z:
    step_pin: gpio6
    dir_pin: gpio7
    max_speed: 1500
    pull_in: 80
    pull_out: 60
    program:
      targets:
        - position: 40
          relative: true
        - position: -40
          relative: true
    tmc:
      address: 2
      microsteps: 64
      interpolate: false
      run_current: 16
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(testJSON))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Driver != DriverDigital {
		t.Errorf("Expected default driver %q, got %q", DriverDigital, cfg.Driver)
	}
	x, err := cfg.Axis("x")
	if err != nil {
		t.Fatalf("Axis(x) failed: %v", err)
	}
	if x.MaxSpeed != 4000 || x.Acceleration != 20000 {
		t.Errorf("Unexpected x limits: %+v", x)
	}
	if x.PullIn != core.VPullInOutDefault || x.PullOut != core.VPullInOutDefault {
		t.Errorf("Expected default pull-in/out, got %d/%d", x.PullIn, x.PullOut)
	}
	if x.Program == nil || len(x.Program.Targets) != 2 || !x.Program.Repeat {
		t.Errorf("Program not parsed: %+v", x.Program)
	}

	y, _ := cfg.Axis("y")
	if y.PullIn != 50 || y.PullOut != 50 {
		t.Errorf("Expected pull-out to follow pull-in 50, got %d/%d", y.PullIn, y.PullOut)
	}
	if y.MaxSpeed != core.VMaxDefault || y.Acceleration != core.ADefault {
		t.Errorf("Expected default limits, got %d/%d", y.MaxSpeed, y.Acceleration)
	}
	if y.TMC == nil || y.TMC.Microsteps != DefaultMicrosteps {
		t.Errorf("Expected TMC microsteps default %d, got %+v", DefaultMicrosteps, y.TMC)
	}

	if _, err := cfg.Axis("e"); !errors.Is(err, ErrUnknownAxis) {
		t.Errorf("Expected ErrUnknownAxis, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML([]byte(testYAML))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}

	if cfg.UART == nil || cfg.UART.Baud != 115200 || !cfg.UART.Echo {
		t.Errorf("Unexpected UART section: %+v", cfg.UART)
	}
	z, err := cfg.Axis("z")
	if err != nil {
		t.Fatalf("Axis(z) failed: %v", err)
	}
	if z.MaxSpeed != 1500 || z.PullIn != 80 || z.PullOut != 60 {
		t.Errorf("Unexpected z speeds: %+v", z)
	}
	if !z.Program.Targets[0].Relative || z.Program.Targets[1].Position != -40 {
		t.Errorf("Unexpected program: %+v", z.Program.Targets)
	}

	s := z.TMC.Settings()
	if s.Microsteps != 64 || s.Interpolate || s.RunCurrent != 16 {
		t.Errorf("Unexpected TMC settings: %+v", s)
	}
}

func TestLoadYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := LoadYAML([]byte("axes:\n  x:\n    step_pin: gpio2\n    dir_pin: gpio3\n    max_sped: 10\n"))
	if err == nil {
		t.Error("Expected error for misspelled key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		axes map[string]AxisConfig
		want error
	}{
		{"empty", nil, ErrNoAxes},
		{"bad pin", map[string]AxisConfig{"x": {StepPin: "PA5", DirPin: "gpio3"}}, ErrBadPin},
		{"step equals dir", map[string]AxisConfig{"x": {StepPin: "gpio3", DirPin: "!gpio3"}}, ErrPinConflict},
		{"shared pin", map[string]AxisConfig{
			"x": {StepPin: "gpio2", DirPin: "gpio3"},
			"y": {StepPin: "gpio4", DirPin: "gpio2"},
		}, ErrPinConflict},
	}

	for _, test := range tests {
		cfg := &MachineConfig{Axes: test.axes}
		if err := cfg.Validate(); !errors.Is(err, test.want) {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, err)
		}
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"machine.json": testJSON,
		"machine.yaml": testYAML,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		cfg, err := LoadFile(path)
		if err != nil {
			t.Errorf("LoadFile(%s) failed: %v", name, err)
			continue
		}
		if cfg.Name != "bench" {
			t.Errorf("LoadFile(%s): expected name bench, got %q", name, cfg.Name)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}
