package core

import (
	"sort"
	"testing"

	"golang.org/x/exp/slices"
)

// newRankedAxes creates axes with the given travel distances and limits
func newRankedAxes(t *testing.T, deltas []int32, speeds []int32, accs []uint32) []*SchedulerHandle {
	t.Helper()
	handles := make([]*SchedulerHandle, len(deltas))
	for i := range deltas {
		a, _ := newTestAxis(t, GPIOPin(10+2*i), GPIOPin(11+2*i))
		a.SetMaxSpeed(speeds[i]).SetAcceleration(accs[i])
		a.SetTargetRel(deltas[i])
		handles[i] = a.SchedulerHandle()
	}
	return handles
}

func TestComparators(t *testing.T) {
	handles := newRankedAxes(t,
		[]int32{40, -300, 120},
		[]int32{2000, -500, 9000},
		[]uint32{8000, 30000, 1000},
	)
	x, y, z := handles[0], handles[1], handles[2]

	tests := []struct {
		name string
		less func(a, b *SchedulerHandle) bool
		want []*SchedulerHandle
	}{
		{"delta", CmpDelta, []*SchedulerHandle{y, z, x}},
		{"acc", CmpAcc, []*SchedulerHandle{z, x, y}},
		{"vmin", CmpVmin, []*SchedulerHandle{y, x, z}},
		{"vmax", CmpVmax, []*SchedulerHandle{z, x, y}},
	}

	for _, test := range tests {
		got := slices.Clone(handles)
		sort.SliceStable(got, func(i, j int) bool { return test.less(got[i], got[j]) })
		for i := range got {
			if got[i] != test.want[i] {
				t.Errorf("%s: position %d holds axis %d, expected %d", test.name, i, got[i].Axis().ID(), test.want[i].Axis().ID())
			}
		}
	}
}

func TestCompareFuncsMatchLess(t *testing.T) {
	handles := newRankedAxes(t,
		[]int32{15, 250, -90, 60},
		[]int32{700, 3000, 1500, 300},
		[]uint32{500, 20000, 2500, 12000},
	)

	pairs := []struct {
		name    string
		less    func(a, b *SchedulerHandle) bool
		compare func(a, b *SchedulerHandle) int
	}{
		{"delta", CmpDelta, CompareDelta},
		{"acc", CmpAcc, CompareAcc},
		{"vmin", CmpVmin, CompareVmin},
		{"vmax", CmpVmax, CompareVmax},
	}

	for _, p := range pairs {
		byLess := slices.Clone(handles)
		sort.SliceStable(byLess, func(i, j int) bool { return p.less(byLess[i], byLess[j]) })
		byCompare := slices.Clone(handles)
		slices.SortStableFunc(byCompare, p.compare)
		if !slices.Equal(byLess, byCompare) {
			t.Errorf("%s: Compare and Cmp orders differ", p.name)
		}
	}
}
