package plates

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/liftmate/liftmate/internal/units"
)

// Inventory maps a plate size to the total number of plates owned.
// A plate is only usable on the bar in pairs, so count/2 fit on each side.
type Inventory map[float64]int

// DefaultInventory returns one pair of every standard plate for the unit.
func DefaultInventory(u units.Unit) Inventory {
	inv := make(Inventory)
	for _, p := range units.Table(u).Plates {
		inv[p] = 2
	}
	return inv
}

// Sizes returns the plate sizes with at least one plate owned, heaviest first.
func (inv Inventory) Sizes() []float64 {
	sizes := make([]float64, 0, len(inv))
	for size, count := range inv {
		if count > 0 && size > 0 {
			sizes = append(sizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	return sizes
}

// PerSide returns how many plates of size fit on one side of the bar.
func (inv Inventory) PerSide(size float64) int {
	return inv[size] / 2
}

// Smallest returns the smallest plate size owned, or 0 when the inventory is empty.
func (inv Inventory) Smallest() float64 {
	sizes := inv.Sizes()
	if len(sizes) == 0 {
		return 0
	}
	return sizes[len(sizes)-1]
}

// pairStep returns the finest per-side step the paired plates can make: the
// greatest common divisor of every size loadable on both sides, or 0 when
// no pair is owned.
func (inv Inventory) pairStep() float64 {
	g := 0
	for _, size := range inv.Sizes() {
		if inv.PerSide(size) > 0 {
			g = gcd(g, int(math.Round(size*scale)))
		}
	}
	return float64(g) / scale
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Restrict returns a copy of inv holding only the given sizes.
func (inv Inventory) Restrict(sizes []float64) Inventory {
	out := make(Inventory, len(sizes))
	for _, s := range sizes {
		if c := inv[s]; c > 0 {
			out[s] = c
		}
	}
	return out
}

// Clone returns a copy of inv.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes plate sizes as decimal string keys ("2.5": 2).
func (inv Inventory) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(inv))
	for size, count := range inv {
		m[units.FormatNumber(size)] = count
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes decimal string keys back into plate sizes.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Inventory, len(m))
	for k, count := range m {
		size, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return fmt.Errorf("parse plate size %q: %w", k, err)
		}
		out[size] = count
	}
	*inv = out
	return nil
}
