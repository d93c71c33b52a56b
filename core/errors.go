package core

import "errors"

var (
	// Construction
	ErrNoPinDriver  = errors.New("no pin driver")
	ErrNoGPIODriver = errors.New("no GPIO driver")
	ErrSamePin      = errors.New("step and dir pin must differ")
	ErrTooManyAxes  = errors.New("axis registry full")

	// Pin drivers
	ErrNoResolver       = errors.New("no register resolver")
	ErrIncompleteLines  = errors.New("register lines incomplete")
	ErrPinNotConfigured = errors.New("pin not configured as output")

	// Groups
	ErrEmptyGroup  = errors.New("sync group needs at least one axis")
	ErrAxisGrouped = errors.New("axis already has configuration hooks")
)
