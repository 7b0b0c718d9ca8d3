package plates

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/liftmate/liftmate/internal/units"
)

// epsilon absorbs float error from fractional plates such as 1.25.
const epsilon = 1e-9

// scale converts weights to integer hundredths for exact subset sums.
const scale = 100

// Loading is the result of solving a target weight.
type Loading struct {
	// PerSide lists the plates on one end of the bar, heaviest first.
	PerSide     []float64
	TotalWeight float64
	Achievable  bool
}

// Solve computes the per-side plates that load target on a bar of barWeight.
//
// Plates are taken largest-first as long as they fit. When the greedy fill
// misses the target, a bounded search over the same inventory looks for an
// exact combination before giving up, so owning more plates never makes a
// weight unreachable. An unreachable target still reports the greedy
// approximation in TotalWeight.
func Solve(target, barWeight float64, inv Inventory) Loading {
	perSide := (target - barWeight) / 2
	switch {
	case perSide < -epsilon:
		return Loading{PerSide: []float64{}, TotalWeight: barWeight, Achievable: false}
	case perSide <= epsilon:
		return Loading{PerSide: []float64{}, TotalWeight: barWeight, Achievable: true}
	}

	sizes := inv.Sizes()
	greedy, remaining := greedyFill(perSide, sizes, inv)
	if math.Abs(remaining) <= epsilon {
		return Loading{PerSide: greedy, TotalWeight: barWeight + 2*sum(greedy), Achievable: true}
	}

	if exact, ok := exactFill(perSide, sizes, inv); ok {
		return Loading{PerSide: exact, TotalWeight: barWeight + 2*sum(exact), Achievable: true}
	}

	return Loading{PerSide: greedy, TotalWeight: barWeight + 2*sum(greedy), Achievable: false}
}

// Nearest returns the closest weight at or above target that the inventory
// can load exactly. Targets below the bar snap to the bar; targets beyond the
// full inventory snap to the heaviest possible load.
//
// Every loadable weight is the bar plus a multiple of twice the GCD of the
// paired plate sizes, so the walk visits each candidate in that lattice.
func Nearest(target, barWeight float64, inv Inventory) float64 {
	if target <= barWeight+epsilon {
		return barWeight
	}
	if Solve(target, barWeight, inv).Achievable {
		return target
	}

	step := 2 * inv.pairStep()
	if step <= 0 {
		return barWeight
	}
	maxLoad := MaxLoad(barWeight, inv)
	if target >= maxLoad {
		return maxLoad
	}

	first := math.Ceil((target-barWeight)/step - epsilon)
	for i := first; ; i++ {
		w := round(barWeight + i*step)
		if w > maxLoad+epsilon {
			return maxLoad
		}
		if Solve(w, barWeight, inv).Achievable {
			return w
		}
	}
}

// MaxLoad is the heaviest weight the inventory can put on the bar.
func MaxLoad(barWeight float64, inv Inventory) float64 {
	total := barWeight
	for _, size := range inv.Sizes() {
		total += 2 * size * float64(inv.PerSide(size))
	}
	return round(total)
}

// FormatPerSide renders plates as grouped text, e.g. "2×20 + 10".
func FormatPerSide(perSide []float64) string {
	if len(perSide) == 0 {
		return "Empty bar"
	}
	sorted := append([]float64(nil), perSide...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var parts []string
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		n := j - i
		label := units.FormatNumber(sorted[i])
		if n > 1 {
			label = fmt.Sprintf("%d×%s", n, label)
		}
		parts = append(parts, label)
		i = j
	}
	return strings.Join(parts, " + ")
}

func greedyFill(perSide float64, sizes []float64, inv Inventory) ([]float64, float64) {
	used := []float64{}
	remaining := perSide
	for _, size := range sizes {
		avail := inv.PerSide(size)
		for avail > 0 && remaining >= size-epsilon {
			used = append(used, size)
			remaining -= size
			avail--
		}
	}
	return used, remaining
}

// exactFill runs a largest-first depth-first search in integer hundredths.
func exactFill(perSide float64, sizes []float64, inv Inventory) ([]float64, bool) {
	target := int(math.Round(perSide * scale))
	cents := make([]int, len(sizes))
	avail := make([]int, len(sizes))
	capacity := make([]int, len(sizes)+1)
	for i, s := range sizes {
		cents[i] = int(math.Round(s * scale))
		avail[i] = inv.PerSide(s)
	}
	for i := len(sizes) - 1; i >= 0; i-- {
		capacity[i] = capacity[i+1] + cents[i]*avail[i]
	}

	counts := make([]int, len(sizes))
	var search func(i, remaining int) bool
	search = func(i, remaining int) bool {
		if remaining == 0 {
			return true
		}
		if i == len(sizes) || remaining > capacity[i] {
			return false
		}
		if cents[i] <= 0 {
			return search(i+1, remaining)
		}
		most := min(avail[i], remaining/cents[i])
		for n := most; n >= 0; n-- {
			counts[i] = n
			if search(i+1, remaining-n*cents[i]) {
				return true
			}
		}
		counts[i] = 0
		return false
	}
	if !search(0, target) {
		return nil, false
	}

	used := []float64{}
	for i, n := range counts {
		for range n {
			used = append(used, sizes[i])
		}
	}
	return used, true
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return round(total)
}

func round(w float64) float64 {
	return math.Round(w*1e6) / 1e6
}
