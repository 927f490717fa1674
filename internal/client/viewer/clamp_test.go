package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{7.9, 7},
		{-0.5, 1},
		{151, 151},
		{151.99, 151},
		{1e9, 151},
		{math.NaN(), 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampNumber(tt.in, 151), "input %v", tt.in)
	}
}

func TestClampDay(t *testing.T) {
	tests := map[string]int{
		"":        1,
		"abc":     1,
		"12":      12,
		" 12 ":    12,
		"12.7":    12,
		"999":     131,
		"-4":      1,
		"NaN":     1,
		"Inf":     1,
		"1e2":     100,
		"130.999": 130,
	}
	for in, want := range tests {
		assert.Equal(t, want, ClampDay(in, 131), "input %q", in)
	}
}

func TestClampNumber_DegenerateUpper(t *testing.T) {
	assert.Equal(t, 1, ClampNumber(5, 0))
}
