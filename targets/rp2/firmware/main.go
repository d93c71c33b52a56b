//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"stepaxis/config"
	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
	"stepaxis/targets/rp2"
)

func main() {
	// CRITICAL: Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	if err := rp2.SetupDebugUART(machine.UART0, machine.GPIO0, machine.GPIO1); err != nil {
		fail()
	}

	cfg, kind, err := rp2.LoadMachine()
	if err != nil {
		core.DebugPrintln("[FW] config: " + err.Error())
		fail()
	}
	core.DebugPrintln("[FW] machine " + cfg.Name + ", driver " + kind.String())

	axes, err := config.Build(cfg, func(string) (core.PinDriver, error) {
		return rp2.NewPinDriver(cfg.Driver)
	})
	if err != nil {
		core.DebugPrintln("[FW] build: " + err.Error())
		fail()
	}

	if cfg.UART != nil {
		configureDrivers(cfg)
	}

	// Flash LED 3 times to indicate the axes are up
	blink(3, 200*time.Millisecond)

	for {
		moved := false
		for _, a := range axes {
			if jog(a) {
				moved = true
			}
		}
		if !moved {
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// configureDrivers applies the TMC settings of every axis that has them.
// A driver that does not answer is logged and left at its OTP defaults.
func configureDrivers(cfg *config.MachineConfig) {
	comm, err := rp2.NewTMCComm(machine.UART1, rp2.TMCTXPin, rp2.TMCRXPin, cfg.UART.Echo)
	if err != nil {
		core.DebugPrintln("[TMC] uart: " + err.Error())
		return
	}
	for _, name := range cfg.AxisNames() {
		tc := cfg.Axes[name].TMC
		if tc == nil {
			continue
		}
		if _, err := tmcuart.Verify(comm, tc.Address); err != nil {
			core.DebugPrintln("[TMC] " + name + ": " + err.Error())
			continue
		}
		if err := tmcuart.Apply(comm, tc.Address, tc.Settings()); err != nil {
			core.DebugPrintln("[TMC] " + name + ": " + err.Error())
			continue
		}
		core.DebugPrintln("[TMC] " + name + " configured")
	}
}

// jog runs one move of an axis at its pull-in speed, loading the next
// queued target when the axis is idle. Pull-in is the rate a motor can
// start and stop at without a ramp. Returns false when there was
// nothing to do.
func jog(a *core.Axis) bool {
	h := a.SchedulerHandle()
	if h.Position() == h.Target() && !a.NextTarget() {
		return false
	}

	info := core.DriverInfo(a.Driver())
	pulse := time.Duration(info.MinPulseNs) * time.Nanosecond
	period := time.Second / time.Duration(h.PullIn())
	if period < 2*pulse {
		period = 2 * pulse
	}

	time.Sleep(time.Duration(info.DirSetupNs) * time.Nanosecond)
	h.SetCurrentSpeed(h.PullIn() * h.Dir())
	for h.Position() != h.Target() {
		h.DoStep()
		time.Sleep(pulse)
		h.ClearStepPin()
		time.Sleep(period - pulse)
	}
	h.SetCurrentSpeed(0)
	return true
}

// fail flashes the LED rapidly forever
func fail() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}

func blink(n int, d time.Duration) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; i < n; i++ {
		led.High()
		time.Sleep(d)
		led.Low()
		time.Sleep(d)
	}
}
