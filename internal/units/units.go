package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Unit is the weight unit a program is tracked in.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lb"
)

// ErrUnknownUnit is returned by Parse for anything other than kg or lb.
var ErrUnknownUnit = errors.New("unknown weight unit")

// Increments holds the per-tier weight steps for one unit.
type Increments struct {
	T1Upper float64
	T1Lower float64
	T2Upper float64
	T2Lower float64
	T3      float64
	// T2Reset is added to the stage-1 anchor when T2 fails at stage 3.
	T2Reset float64
}

// Config is the static equipment and increment table for a unit.
type Config struct {
	Unit           Unit
	BarWeight      float64
	DumbbellHandle float64
	// Plates lists the standard plate sizes, heaviest first.
	Plates []float64
	// BigPlates are the plates used when building warmups.
	BigPlates []float64
	// Rounding is the increment 5RM-derived weights snap to.
	Rounding   float64
	Increments Increments
}

var table = map[Unit]Config{
	Kilograms: {
		Unit:           Kilograms,
		BarWeight:      20,
		DumbbellHandle: 2,
		Plates:         []float64{25, 20, 15, 10, 5, 2.5, 1.25},
		BigPlates:      []float64{25, 20, 15, 10, 5},
		Rounding:       2.5,
		Increments: Increments{
			T1Upper: 2.5,
			T1Lower: 5,
			T2Upper: 2.5,
			T2Lower: 5,
			T3:      2.5,
			T2Reset: 10,
		},
	},
	Pounds: {
		Unit:           Pounds,
		BarWeight:      45,
		DumbbellHandle: 5,
		Plates:         []float64{45, 35, 25, 10, 5, 2.5},
		BigPlates:      []float64{45, 35, 25, 10},
		Rounding:       5,
		Increments: Increments{
			T1Upper: 5,
			T1Lower: 10,
			T2Upper: 5,
			T2Lower: 10,
			T3:      5,
			T2Reset: 20,
		},
	},
}

// Table returns the configuration for u. Unknown units fall back to kilograms.
func Table(u Unit) Config {
	if cfg, ok := table[u]; ok {
		return cfg
	}
	return table[Kilograms]
}

// Parse converts user input such as "KG" or "lbs" into a Unit.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilograms":
		return Kilograms, nil
	case "lb", "lbs", "pounds":
		return Pounds, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := table[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// RoundTo rounds weight to the nearest multiple of increment.
// A non-positive increment leaves the weight unchanged.
func RoundTo(weight, increment float64) float64 {
	if increment <= 0 {
		return weight
	}
	return math.Round(weight/increment) * increment
}

// Format renders a weight without trailing zeros, e.g. "77.5 kg" or "100 kg".
func Format(weight float64, u Unit) string {
	return FormatNumber(weight) + " " + string(u)
}

// FormatNumber renders a weight without trailing zeros.
func FormatNumber(weight float64) string {
	s := fmt.Sprintf("%.2f", weight)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
