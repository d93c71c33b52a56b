package core

import (
	"cmp"

	"stepaxis/mathx"
)

// Comparators rank axes for a synchronized move. The bool forms are
// strict "less" functions for sort.Slice-style use; the Compare forms
// return -1/0/+1 for slices.SortFunc. Ties have no defined order.

// CmpDelta orders by travel distance, longest first (lead axis first)
func CmpDelta(a, b *SchedulerHandle) bool { return a.A() > b.A() }

// CmpAcc orders by acceleration limit, lowest first
func CmpAcc(a, b *SchedulerHandle) bool { return a.Acceleration() < b.Acceleration() }

// CmpVmin orders by speed magnitude, slowest first
func CmpVmin(a, b *SchedulerHandle) bool { return absVMax(a) < absVMax(b) }

// CmpVmax orders by speed magnitude, fastest first
func CmpVmax(a, b *SchedulerHandle) bool { return absVMax(a) > absVMax(b) }

// CompareDelta is CmpDelta as a three-way comparison
func CompareDelta(a, b *SchedulerHandle) int { return cmp.Compare(b.A(), a.A()) }

// CompareAcc is CmpAcc as a three-way comparison
func CompareAcc(a, b *SchedulerHandle) int { return cmp.Compare(a.Acceleration(), b.Acceleration()) }

// CompareVmin is CmpVmin as a three-way comparison
func CompareVmin(a, b *SchedulerHandle) int { return cmp.Compare(absVMax(a), absVMax(b)) }

// CompareVmax is CmpVmax as a three-way comparison
func CompareVmax(a, b *SchedulerHandle) int { return cmp.Compare(absVMax(b), absVMax(a)) }

func comparePullIn(a, b *SchedulerHandle) int { return cmp.Compare(a.PullIn(), b.PullIn()) }

func comparePullOut(a, b *SchedulerHandle) int { return cmp.Compare(a.PullOut(), b.PullOut()) }

func absVMax(h *SchedulerHandle) int64 {
	return mathx.Abs(int64(h.VMax()))
}
