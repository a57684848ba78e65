package convert

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_Accepts(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"string decimal", "0.10", 0.10},
		{"string scientific", "1.5e3", 1500},
		{"string padded", "  42 ", 42},
		{"float64", 3.14, 3.14},
		{"int", 7, 7},
		{"int64", int64(-2), -2},
		{"json number", json.Number("99.5"), 99.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Float(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestFloat_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"empty string", ""},
		{"whitespace", "   "},
		{"garbage", "12abc"},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"bool", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Float(tc.in)
			assert.Error(t, err)
		})
	}
}

func TestPositiveFloat(t *testing.T) {
	got, err := PositiveFloat("0.00000001")
	require.NoError(t, err)
	assert.Greater(t, got, 0.0)

	_, err = PositiveFloat("0")
	assert.Error(t, err)
	_, err = PositiveFloat(-1.0)
	assert.Error(t, err)
}

func TestFinite(t *testing.T) {
	got, err := Finite("price", 10.5)
	require.NoError(t, err)
	assert.Equal(t, 10.5, got)

	_, err = Finite("pnl", math.NaN())
	assert.ErrorContains(t, err, "pnl")
	_, err = Finite("cost", math.Inf(-1))
	assert.Error(t, err)
}
