package config

// AxisConfig describes one axis. Pin specs accept "gpio5", "GPIO5" or
// "5"; a leading "!" on the step pin selects active-low pulses, on the
// dir pin it inverts the rotation sense.
type AxisConfig struct {
	StepPin      string `json:"step_pin" yaml:"step_pin"`
	DirPin       string `json:"dir_pin" yaml:"dir_pin"`
	MaxSpeed     int32  `json:"max_speed" yaml:"max_speed"`       // steps/s
	PullIn       int32  `json:"pull_in" yaml:"pull_in"`           // steps/s
	PullOut      int32  `json:"pull_out" yaml:"pull_out"`         // steps/s
	Acceleration uint32 `json:"acceleration" yaml:"acceleration"` // steps/s^2
	Position     int32  `json:"position" yaml:"position"`         // initial step counter

	Program *ProgramConfig `json:"program,omitempty" yaml:"program,omitempty"`
	TMC     *TMCConfig     `json:"tmc,omitempty" yaml:"tmc,omitempty"`
}

// TargetConfig is one waypoint of a program. Zero speeds use the axis
// defaults.
type TargetConfig struct {
	Position int32 `json:"position" yaml:"position"`
	Relative bool  `json:"relative" yaml:"relative"`
	Speed    int32 `json:"speed" yaml:"speed"`
	PullIn   int32 `json:"pull_in" yaml:"pull_in"`
	PullOut  int32 `json:"pull_out" yaml:"pull_out"`
}

// ProgramConfig is a list of targets queued on the axis at build time
type ProgramConfig struct {
	Targets []TargetConfig `json:"targets" yaml:"targets"`
	Repeat  bool           `json:"repeat" yaml:"repeat"`
}

// TMCConfig holds TMC2209 UART settings for the axis driver chip
type TMCConfig struct {
	Address     uint8  `json:"address" yaml:"address"`
	Microsteps  uint16 `json:"microsteps" yaml:"microsteps"`
	Interpolate *bool  `json:"interpolate,omitempty" yaml:"interpolate,omitempty"`
	SpreadCycle bool   `json:"spread_cycle" yaml:"spread_cycle"`
	InvertShaft bool   `json:"invert_shaft" yaml:"invert_shaft"`
	RunCurrent  uint8  `json:"run_current" yaml:"run_current"`
	HoldCurrent uint8  `json:"hold_current" yaml:"hold_current"`
	HoldDelay   uint8  `json:"hold_delay" yaml:"hold_delay"`
}

// UARTConfig is the serial link shared by the TMC drivers
type UARTConfig struct {
	Device string `json:"device" yaml:"device"`
	Baud   int    `json:"baud" yaml:"baud"`
	Echo   bool   `json:"echo" yaml:"echo"` // single-wire bus reflects requests
}

// MachineConfig is the complete configuration: a set of named axes and
// the pin driver they share
type MachineConfig struct {
	Name   string                `json:"name" yaml:"name"`
	Driver string                `json:"driver" yaml:"driver"` // "digital" or a platform register driver
	UART   *UARTConfig           `json:"uart,omitempty" yaml:"uart,omitempty"`
	Axes   map[string]AxisConfig `json:"axes" yaml:"axes"`
}
