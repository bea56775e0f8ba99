package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreTo5(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0.0},
		{100, 5.0},
		{50, 3.0},
		{25, 2.0},
		{75, 4.0},
		{37.5, 2.5},
		{32.5, 2.3},
		{67.5, 3.7},
		{12.5, 1.5},
		{97.5, 4.9},
		{80.0, 4.2},
		{2.5, 1.1},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ScoreTo5(tc.in), 0.001, "ScoreTo5(%v)", tc.in)
	}
}

func TestScoreTo5StaysBelowMaxNearTop(t *testing.T) {
	got := ScoreTo5(98.0)
	assert.Greater(t, got, 4.0)
	assert.Less(t, got, 5.0)
	assert.InDelta(t, 4.9, got, 0.001)
}

func TestScoreTo5ZeroFloor(t *testing.T) {
	// Zero is an explicit floor, not the linear formula's 1.0.
	assert.Zero(t, ScoreTo5(0))
	assert.Zero(t, ScoreTo5(-12))
}

func TestScoreTo100(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0.0},
		{5, 100.0},
		{3, 50.0},
		{1, 0.0},
		{2, 25.0},
		{4, 75.0},
		{2.5, 37.5},
		{3.5, 62.5},
		{1.1, 2.5},
		{2.3, 32.5},
		{3.7, 67.5},
		{4.9, 97.5},
		{1.5, 12.5},
		{4.2, 80.0},
		{0.5, 0.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ScoreTo100(tc.in), 0.01, "ScoreTo100(%v)", tc.in)
	}
}

func TestScoreRoundTripIntegers(t *testing.T) {
	for x := 2.0; x <= 5.0; x++ {
		assert.InDelta(t, x, ScoreTo5(ScoreTo100(x)), 0.1, "round trip %v", x)
	}
}

func TestScoreRoundTripLossyAtOne(t *testing.T) {
	// 1 converts to 0, and 0 converts back to 0, not 1.
	assert.Zero(t, ScoreTo100(1))
	assert.Zero(t, ScoreTo5(ScoreTo100(1)))
}
