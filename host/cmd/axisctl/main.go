package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"stepaxis/config"
	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
	"stepaxis/host/periphgpio"
	"stepaxis/host/serial"
)

var (
	configPath = flag.String("config", "", "Machine config (.json or .yaml); built-in two-axis config if empty")
	dryRun     = flag.Bool("dry-run", false, "Drive in-memory GPIO instead of real pins")
	tmcDevice  = flag.String("tmc", "", "Serial device of the TMC2209 UART bus (overrides the config)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Println("axisctl - step/dir axis console")
	fmt.Println("===============================")

	if *verbose {
		core.SetDebugWriter(func(s string) { log.Println(s) })
		core.SetDebugEnabled(true)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gpio, err := openGPIO(*dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	axes, err := config.Build(cfg, func(name string) (core.PinDriver, error) {
		if cfg.Driver != config.DriverDigital {
			return nil, fmt.Errorf("pin driver %q not available on host", cfg.Driver)
		}
		return core.NewDigitalPinDriver(gpio), nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		for _, a := range axes {
			a.Close()
		}
		if *verbose {
			core.DumpEvents()
		}
	}()

	sh := newShell(os.Stdout, cfg, axes)

	if port, echo, err := openTMC(cfg, *tmcDevice); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	} else if port != nil {
		defer port.Close()
		sh.tmc = tmcuart.NewComm(port, echo)
		sh.configureDrivers()
	}

	sh.status()
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	if err := sh.run(os.Stdin, true); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.MachineConfig, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadFile(path)
}

func openGPIO(dry bool) (core.GPIODriver, error) {
	if dry {
		fmt.Println("Dry run: pins are simulated in memory")
		return core.NewMemGPIO(), nil
	}
	d, err := periphgpio.Open()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// openTMC opens the TMC UART bus named by the flag or the config, if any
func openTMC(cfg *config.MachineConfig, device string) (serial.Port, bool, error) {
	sc := serial.DefaultConfig(device)
	echo := false
	if cfg.UART != nil {
		if device == "" {
			sc.Device = cfg.UART.Device
		}
		sc.Baud = cfg.UART.Baud
		echo = cfg.UART.Echo
	}
	if sc.Device == "" {
		return nil, false, nil
	}

	fmt.Printf("Opening TMC bus on %s...\n", sc.Device)
	port, err := serial.Open(sc)
	if err != nil {
		return nil, false, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, false, err
	}
	return port, echo, nil
}
