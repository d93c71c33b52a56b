package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stepaxis/core"
)

var ErrBadPin = errors.New("invalid pin")

// Pin is a parsed pin specification
type Pin struct {
	Number core.GPIOPin
	Invert bool // "!" prefix
}

// String formats the pin the way ParsePin accepts it
func (p Pin) String() string {
	s := "gpio" + strconv.Itoa(int(p.Number))
	if p.Invert {
		return "!" + s
	}
	return s
}

// ParsePin parses "[!]gpioN", "[!]GPION" or "[!]N"
func ParsePin(desc string) (Pin, error) {
	d := strings.TrimSpace(desc)
	if d == "" {
		return Pin{}, fmt.Errorf("%w: empty specification", ErrBadPin)
	}

	var p Pin
	if d[0] == '!' {
		p.Invert = true
		d = strings.TrimSpace(d[1:])
	}
	if len(d) >= 4 && strings.EqualFold(d[:4], "gpio") {
		d = d[4:]
	}

	n, err := strconv.ParseUint(d, 10, 8)
	if err != nil {
		return Pin{}, fmt.Errorf("%w: %q", ErrBadPin, desc)
	}
	p.Number = core.GPIOPin(n)
	return p, nil
}
