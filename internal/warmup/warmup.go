// Package warmup builds the ramp of warmup sets that precede a work set.
package warmup

import (
	"math"
	"sort"

	"github.com/liftmate/liftmate/internal/plates"
	"github.com/liftmate/liftmate/internal/units"
)

// Set is a single warmup set.
type Set struct {
	Weight  float64   `json:"weight"`
	Reps    int       `json:"reps"`
	PerSide []float64 `json:"perSide"`
	Label   string    `json:"label"`
}

// checkpoint is an intermediate warmup between the bar and the top set.
type checkpoint struct {
	pct   float64
	reps  int
	label string
}

const (
	barReps  = 5
	topPct   = 0.85
	topReps  = 2
	topLabel = "85%"
)

var checkpoints = []checkpoint{
	{pct: 0.45, reps: 5, label: "45%"},
	{pct: 0.65, reps: 3, label: "65%"},
}

// Build returns the warmup sets for workWeight, lightest first.
//
// Only the unit's big plates are used. The top set is filled smallest plate
// first so that it holds compound combinations (5+10 rather than 15); every
// lighter set is then a subset of those plates, which means each step up
// only adds plates to the bar.
func Build(workWeight, barWeight float64, inv plates.Inventory, unit units.Unit) []Set {
	sets := []Set{
		{Weight: barWeight, Reps: barReps, PerSide: []float64{}, Label: "Bar"},
		{Weight: barWeight, Reps: barReps, PerSide: []float64{}, Label: "Bar"},
	}

	top := math.Round(workWeight * topPct)
	if top <= barWeight {
		return sets
	}

	big := inv.Restrict(units.Table(unit).BigPlates)
	topPlates := fillSmallestFirst((top-barWeight)/2, big)
	if len(topPlates) == 0 {
		return sets
	}

	for _, cp := range checkpoints {
		target := math.Round(workWeight * cp.pct)
		if target <= barWeight {
			continue
		}
		subset := bestSubset((target-barWeight)/2, topPlates)
		if len(subset) == 0 {
			continue
		}
		sets = append(sets, Set{
			Weight:  barWeight + 2*total(subset),
			Reps:    cp.reps,
			PerSide: subset,
			Label:   cp.label,
		})
	}

	display := append([]float64(nil), topPlates...)
	sort.Sort(sort.Reverse(sort.Float64Slice(display)))
	sets = append(sets, Set{
		Weight:  barWeight + 2*total(display),
		Reps:    topReps,
		PerSide: display,
		Label:   topLabel,
	})
	return sets
}

// Volume is the total weight moved across the warmup sets.
func Volume(sets []Set) float64 {
	v := 0.0
	for _, s := range sets {
		v += s.Weight * float64(s.Reps)
	}
	return v
}

func fillSmallestFirst(perSide float64, inv plates.Inventory) []float64 {
	sizes := inv.Sizes()
	sort.Float64s(sizes)

	used := []float64{}
	remaining := perSide
	for _, size := range sizes {
		avail := inv.PerSide(size)
		for avail > 0 && remaining >= size {
			used = append(used, size)
			remaining -= size
			avail--
		}
	}
	return used
}

// bestSubset picks plates from pool, largest first, without exceeding perSide.
func bestSubset(perSide float64, pool []float64) []float64 {
	sorted := append([]float64(nil), pool...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	used := []float64{}
	remaining := perSide
	for _, size := range sorted {
		if size <= remaining {
			used = append(used, size)
			remaining -= size
		}
	}
	return used
}

func total(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}
