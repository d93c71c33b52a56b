//go:build !tinygo

package core

// irqState stands in for the interrupt state on hosts, where the tick
// context is a goroutine and the atomic fields carry the ordering.
type irqState struct{}

func disableInterrupts() irqState {
	return irqState{}
}

func restoreInterrupts(irqState) {}
