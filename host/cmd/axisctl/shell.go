package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"tinygo.org/x/drivers/tmc2209"

	"stepaxis/config"
	"stepaxis/core"
	"stepaxis/drivers/tmcuart"
)

// maxRunMoves bounds "run" on a repeating queue
const maxRunMoves = 1000

var (
	errUsage = errors.New("wrong arguments (type 'help')")
	errNoTMC = errors.New("no TMC bus open (use -tmc or a uart config section)")
)

// shell is the interactive console over a set of built axes
type shell struct {
	out   io.Writer
	cfg   *config.MachineConfig
	axes  map[string]*core.Axis
	names []string
	tmc   tmc2209.RegisterComm
}

func newShell(out io.Writer, cfg *config.MachineConfig, axes []*core.Axis) *shell {
	s := &shell{
		out:  out,
		cfg:  cfg,
		axes: make(map[string]*core.Axis, len(axes)),
	}
	for _, a := range axes {
		s.axes[a.Name()] = a
		s.names = append(s.names, a.Name())
	}
	return s
}

// run executes commands from in until EOF or quit
func (s *shell) run(in io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		quit, err := s.exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command line
func (s *shell) exec(line string) (bool, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	parts, err := shlex.Split(line)
	if err != nil {
		return false, err
	}
	if len(parts) == 0 {
		return false, nil
	}

	cmd, args := parts[0], parts[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.help()
		return false, nil
	case "status":
		s.status()
		return false, nil
	case "events":
		s.events()
		return false, nil
	}

	if len(args) == 0 {
		if _, known := commandArgs[cmd]; known {
			return false, errUsage
		}
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
	a, ok := s.axes[args[0]]
	if !ok {
		return false, fmt.Errorf("%w: %s", config.ErrUnknownAxis, args[0])
	}
	if cmd == "add" {
		return false, s.add(a, args[1:])
	}
	nums, err := parseInts(args[1:])
	if err != nil {
		return false, err
	}
	want, known := commandArgs[cmd]
	if !known {
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
	if len(nums) < want[0] || len(nums) > want[1] {
		return false, errUsage
	}

	switch cmd {
	case "goto":
		s.report(a, a.SetTargetAbs(nums[0]))
	case "move":
		s.report(a, a.SetTargetRel(nums[0]))
	case "next":
		s.report(a, a.NextTarget())
	case "repeat":
		a.RepeatTargets()
	case "clear":
		a.RemoveTargets()
	case "zero":
		pos := int32(0)
		if len(nums) == 1 {
			pos = nums[0]
		}
		a.SetPosition(pos)
	case "speed":
		a.SetMaxSpeed(nums[0])
	case "pullin":
		if len(nums) == 2 {
			a.SetPullInOutSpeed(nums[0], nums[1])
		} else {
			a.SetPullInSpeed(nums[0])
		}
	case "accel":
		if nums[0] < 0 {
			return false, errUsage
		}
		a.SetAcceleration(uint32(nums[0]))
	case "invert":
		a.SetInverseRotation(nums[0] != 0)
	case "polarity":
		a.SetStepPinPolarity(core.Level(nums[0] != 0))
	case "run":
		limit := maxRunMoves
		if len(nums) == 1 {
			limit = int(nums[0])
		}
		s.runMoves(a, limit)
	case "tmc":
		return false, s.configureDriver(a)
	}
	return false, nil
}

// commandArgs is the min/max count of numeric arguments after the axis
var commandArgs = map[string][2]int{
	"goto":     {1, 1},
	"move":     {1, 1},
	"add":      {1, 4},
	"next":     {0, 0},
	"repeat":   {0, 0},
	"clear":    {0, 0},
	"zero":     {0, 1},
	"speed":    {1, 1},
	"pullin":   {1, 2},
	"accel":    {1, 1},
	"invert":   {1, 1},
	"polarity": {1, 1},
	"run":      {0, 1},
	"tmc":      {0, 0},
}

func parseInts(args []string) ([]int32, error) {
	var nums []int32
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", arg)
		}
		nums = append(nums, int32(n))
	}
	return nums, nil
}

// add parses "abs|rel <pos> [speed [pullin [pullout]]]"
func (s *shell) add(a *core.Axis, args []string) error {
	if len(args) < 2 || len(args) > 5 || (args[0] != "abs" && args[0] != "rel") {
		return errUsage
	}
	nums, err := parseInts(args[1:])
	if err != nil {
		return err
	}
	for len(nums) < 4 {
		nums = append(nums, 0)
	}

	var ok bool
	if args[0] == "abs" {
		ok = a.AddTargetAbs(nums[0], nums[1], nums[2], nums[3])
	} else {
		ok = a.AddTargetRel(nums[0], nums[1], nums[2], nums[3])
	}
	if !ok {
		fmt.Fprintf(s.out, "%s: target rejected (degenerate or queue full)\n", a.Name())
		return nil
	}
	fmt.Fprintf(s.out, "%s: %d queued\n", a.Name(), a.PendingTargets())
	return nil
}

// runMoves pulses the axis through its loaded target and then through
// the queue, back to back. It only makes sense on a dry run or with the
// motor disconnected: there is no ramp. The direction is re-aimed at the
// target before every pulse, since zero can move the position past it.
func (s *shell) runMoves(a *core.Axis, limit int) {
	h := a.SchedulerHandle()
	moves, steps := 0, 0
	for {
		for h.Position() != h.Target() {
			dir := int32(1)
			if h.Target() < h.Position() {
				dir = -1
			}
			if h.Dir() != dir {
				h.SetDir(dir)
			}
			h.DoStep()
			h.ClearStepPin()
			steps++
		}
		if moves >= limit || !a.NextTarget() {
			break
		}
		moves++
	}
	fmt.Fprintf(s.out, "%s: %d moves, %d steps, now at %d\n", a.Name(), moves, steps, a.GetPosition())
}

func (s *shell) report(a *core.Axis, loaded bool) {
	if !loaded {
		fmt.Fprintf(s.out, "%s: nothing loaded\n", a.Name())
		return
	}
	h := a.SchedulerHandle()
	fmt.Fprintf(s.out, "%s: target %d, dir %+d, distance %d, vmax %d\n",
		a.Name(), a.Target(), a.Dir(), h.A(), h.VMax())
}

func (s *shell) status() {
	fmt.Fprintf(s.out, "%-6s %3s %8s %8s %4s %7s %7s %7s %6s %s\n",
		"AXIS", "ID", "POS", "TARGET", "DIR", "VMAX", "PULLIN", "ACCEL", "QUEUE", "DRIVER")
	for _, name := range s.names {
		a := s.axes[name]
		queue := strconv.Itoa(a.PendingTargets())
		if a.Repeating() {
			queue += "*"
		}
		fmt.Fprintf(s.out, "%-6s %3d %8d %8d %+4d %7d %7d %7d %6s %s\n",
			name, a.ID(), a.GetPosition(), a.Target(), a.Dir(),
			a.MaxSpeed(), a.PullInSpeed(), a.Acceleration(), queue, a.Driver().GetName())
	}
}

func (s *shell) events() {
	evts := core.Events()
	if len(evts) == 0 {
		fmt.Fprintln(s.out, "no events")
		return
	}
	for _, evt := range evts {
		fmt.Fprintf(s.out, "%5d %-16s axis=%d v1=%d v2=%d\n",
			evt.Seq, core.EventName(evt.EventType), evt.AxisID, evt.Value1, evt.Value2)
	}
}

// configureDrivers applies the TMC settings of every axis that has them
func (s *shell) configureDrivers() {
	for _, name := range s.names {
		if s.cfg.Axes[name].TMC == nil {
			continue
		}
		if err := s.configureDriver(s.axes[name]); err != nil {
			fmt.Fprintf(s.out, "Error: %s: %v\n", name, err)
		}
	}
}

func (s *shell) configureDriver(a *core.Axis) error {
	if s.tmc == nil {
		return errNoTMC
	}
	tc := s.cfg.Axes[a.Name()].TMC
	if tc == nil {
		return fmt.Errorf("%s: no tmc section", a.Name())
	}

	version, err := tmcuart.Verify(s.tmc, tc.Address)
	if err != nil {
		return err
	}
	settings := tc.Settings()
	if err := tmcuart.Apply(s.tmc, tc.Address, settings); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: TMC2209 v0x%02x at node %d, %d microsteps\n",
		a.Name(), version, tc.Address, settings.Microsteps)
	return nil
}

func (s *shell) help() {
	fmt.Fprintln(s.out, "\nAvailable commands:")
	fmt.Fprintln(s.out, "  status                       - Show all axes")
	fmt.Fprintln(s.out, "  goto <axis> <pos>            - Replace queue, load absolute target")
	fmt.Fprintln(s.out, "  move <axis> <delta>          - Replace queue, load relative target")
	fmt.Fprintln(s.out, "  add <axis> abs|rel <pos> [speed [pullin [pullout]]]")
	fmt.Fprintln(s.out, "                               - Queue a target")
	fmt.Fprintln(s.out, "  next <axis>                  - Load the next queued target")
	fmt.Fprintln(s.out, "  repeat <axis>                - Cycle the queue")
	fmt.Fprintln(s.out, "  clear <axis>                 - Drop queued targets")
	fmt.Fprintln(s.out, "  zero <axis> [pos]            - Overwrite the position counter")
	fmt.Fprintln(s.out, "  speed|accel <axis> <v>       - Set max speed / acceleration")
	fmt.Fprintln(s.out, "  pullin <axis> <in> [out]     - Set pull-in/out speed")
	fmt.Fprintln(s.out, "  invert|polarity <axis> 0|1   - Dir inversion / step polarity (1 = high)")
	fmt.Fprintln(s.out, "  run <axis> [moves]           - Pulse through the queue without a ramp")
	fmt.Fprintln(s.out, "  tmc <axis>                   - Configure the axis TMC2209")
	fmt.Fprintln(s.out, "  events                       - Show the event ring")
	fmt.Fprintln(s.out, "  quit/exit/q                  - Exit the program")
	fmt.Fprintln(s.out)
}
