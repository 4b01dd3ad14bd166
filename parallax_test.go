package kinegram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{2.4999, 2},
		{10.8, 11},
		{-0.4, 0},
		{-0.5, -1},
		{-2.5, -3},
		{-2.6, -3},
		{7, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}

func TestRatio(t *testing.T) {
	r, err := Ratio(0.9, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, r, 1e-12)

	r, err = Ratio(3, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, r, 1e-12)
}

func TestRatio_Errors(t *testing.T) {
	_, err := Ratio(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	for _, bad := range [][2]float64{
		{-1, 1},
		{1, -1},
		{math.NaN(), 1},
		{1, math.Inf(1)},
	} {
		_, err := Ratio(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidParameters, "Ratio(%v, %v)", bad[0], bad[1])
	}
}

func TestScaledInterlaceWidth(t *testing.T) {
	got, err := ScaledInterlaceWidth(12, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 11, got)

	got, err = ScaledInterlaceWidth(3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = ScaledInterlaceWidth(3, 0.1)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = ScaledInterlaceWidth(3, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestAnimationPeriod(t *testing.T) {
	assert.InDelta(t, 300/0.0254, DefaultDotsPerMeter, 1e-9)
	assert.InDelta(t, DefaultDotsPerMeter, DotsPerMeter(300), 1e-9)

	// 300 px at 300 dpi is one inch
	assert.InDelta(t, 0.0254, AnimationPeriod(300, DefaultDotsPerMeter), 1e-12)
	assert.InDelta(t, 9*0.0254/300, AnimationPeriod(9, DefaultDotsPerMeter), 1e-15)
}

func TestViewerMovementDistance(t *testing.T) {
	assert.InDelta(t, 0.9, ViewerMovementDistance(0.1, 0.9, 0.1), 1e-12)
	assert.InDelta(t, 0.5, ViewerMovementDistance(0.25, 2, 1), 1e-12)

	t.Run("non-positive d2 falls back to period", func(t *testing.T) {
		assert.Equal(t, 0.25, ViewerMovementDistance(0.25, 2, 0))
		assert.Equal(t, 0.25, ViewerMovementDistance(0.25, 2, -1))
	})
}
