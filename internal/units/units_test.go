package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"kg", Kilograms, false},
		{" KG ", Kilograms, false},
		{"lbs", Pounds, false},
		{"pounds", Pounds, false},
		{"stone", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable(t *testing.T) {
	kg := Table(Kilograms)
	assert.Equal(t, 20.0, kg.BarWeight)
	assert.Equal(t, 10.0, kg.Increments.T2Reset)
	assert.Equal(t, 2.5, kg.Rounding)

	lb := Table(Pounds)
	assert.Equal(t, 45.0, lb.BarWeight)
	assert.Equal(t, 20.0, lb.Increments.T2Reset)

	assert.Equal(t, kg, Table("stone"), "unknown units fall back to kg")
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 102.5, RoundTo(101.5, 2.5))
	assert.Equal(t, 100.0, RoundTo(101.2, 2.5))
	assert.Equal(t, 105.0, RoundTo(103, 5))
	assert.Equal(t, 33.3, RoundTo(33.3, 0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "77.5 kg", Format(77.5, Kilograms))
	assert.Equal(t, "100 lb", Format(100, Pounds))
	assert.Equal(t, "1.25", FormatNumber(1.25))
}
