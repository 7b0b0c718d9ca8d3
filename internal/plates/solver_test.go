package plates

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullKgSet() Inventory {
	return Inventory{20: 2, 15: 2, 10: 2, 5: 2, 2.5: 2, 1.25: 2}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name       string
		target     float64
		inv        Inventory
		perSide    []float64
		total      float64
		achievable bool
	}{
		{"exact with fractional plates", 77.5, fullKgSet(), []float64{20, 5, 2.5, 1.25}, 77.5, true},
		{"bar only", 20, fullKgSet(), []float64{}, 20, true},
		{"below bar", 15, fullKgSet(), []float64{}, 20, false},
		{"unreachable reports approximation", 24, fullKgSet(), []float64{1.25}, 22.5, false},
		{"single plate count cannot load", 60, Inventory{20: 1}, []float64{}, 20, false},
		{"empty inventory", 40, Inventory{}, []float64{}, 20, false},
		{"multiple pairs", 100, Inventory{20: 4, 10: 2}, []float64{20, 20}, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Solve(tt.target, 20, tt.inv)
			assert.Equal(t, tt.perSide, got.PerSide)
			assert.InDelta(t, tt.total, got.TotalWeight, 1e-9)
			assert.Equal(t, tt.achievable, got.Achievable)
		})
	}
}

func TestSolveFallsBackWhenGreedyOvershoots(t *testing.T) {
	got := Solve(60, 20, Inventory{15: 2, 10: 4})
	require.True(t, got.Achievable)
	assert.Equal(t, []float64{10, 10}, got.PerSide)
}

func TestSolveRoundTrip(t *testing.T) {
	inv := fullKgSet()
	for target := 20.0; target <= 130; target += 1.25 {
		got := Solve(target, 20, inv)
		if !got.Achievable {
			continue
		}
		loaded := 20 + 2*sum(got.PerSide)
		if math.Abs(loaded-target) > 1e-9 {
			t.Errorf("Solve(%v) loads %v", target, loaded)
		}
	}
}

func TestSolveMonotonicInInventory(t *testing.T) {
	base := Inventory{10: 4, 5: 2}
	for target := 20.0; target <= 80; target += 2.5 {
		before := Solve(target, 20, base).Achievable
		for _, extra := range []float64{15, 10, 5, 2.5, 1.25} {
			bigger := base.Clone()
			bigger[extra] += 2
			after := Solve(target, 20, bigger).Achievable
			if before && !after {
				t.Errorf("adding a pair of %v made %v unreachable", extra, target)
			}
		}
	}
}

func TestNearest(t *testing.T) {
	inv := fullKgSet()
	tests := []struct {
		name   string
		target float64
		inv    Inventory
		want   float64
	}{
		{"already exact", 77.5, inv, 77.5},
		{"rounds up", 24, inv, 25},
		{"below bar", 10, inv, 20},
		{"beyond capacity", 500, inv, 127.5},
		{"empty inventory", 40, Inventory{}, 20},
		{"plates not multiples of the smallest", 45, Inventory{10: 2, 15: 2}, 50},
		{"mixed 20 and 15 pairs", 55, Inventory{20: 2, 15: 2}, 60},
		{"skips unloadable lattice points", 61, Inventory{20: 2, 15: 2}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Nearest(tt.target, 20, tt.inv), 1e-9)
		})
	}
}

func TestFormatPerSide(t *testing.T) {
	assert.Equal(t, "2×20 + 10", FormatPerSide([]float64{20, 10, 20}))
	assert.Equal(t, "20 + 5 + 2.5 + 1.25", FormatPerSide([]float64{20, 5, 2.5, 1.25}))
	assert.Equal(t, "Empty bar", FormatPerSide(nil))
}

func TestInventoryJSON(t *testing.T) {
	raw := []byte(`{"20":4,"2.5":2,"1.25":2}`)
	var inv Inventory
	require.NoError(t, json.Unmarshal(raw, &inv))
	assert.Equal(t, Inventory{20: 4, 2.5: 2, 1.25: 2}, inv)

	out, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))

	require.Error(t, json.Unmarshal([]byte(`{"heavy":2}`), &inv))
}

func TestInventoryHelpers(t *testing.T) {
	inv := Inventory{20: 3, 1.25: 1, 5: 0}
	assert.Equal(t, []float64{20, 1.25}, inv.Sizes())
	assert.Equal(t, 1, inv.PerSide(20))
	assert.Equal(t, 1.25, inv.Smallest())
	assert.Equal(t, 20.0, inv.pairStep())
	assert.Equal(t, 5.0, Inventory{10: 2, 15: 2}.pairStep())
	assert.Equal(t, 1.25, fullKgSet().pairStep())
	assert.Equal(t, 0.0, Inventory{25: 1}.pairStep())
	assert.Equal(t, Inventory{20: 3}, inv.Restrict([]float64{20, 5}))
	assert.Equal(t, 0.0, Inventory{}.Smallest())
}
