package kinegram

import (
	"fmt"
	"math"
)

// DefaultDPI is the print resolution the animation period is measured at.
const DefaultDPI = 300

// DefaultDotsPerMeter is DefaultDPI expressed per meter.
const DefaultDotsPerMeter = DefaultDPI / 0.0254

// DotsPerMeter converts a print resolution in dots per inch.
func DotsPerMeter(dpi float64) float64 {
	return dpi / 0.0254
}

// RoundHalfUp rounds x to the nearest integer, sending halves away from zero.
// Every pixel count derived from a real number goes through here.
func RoundHalfUp(x float64) int {
	t := math.Trunc(x)
	if math.Abs(x-t) >= 0.5 {
		t += math.Copysign(1, x)
	}
	return int(t)
}

// Ratio returns overlayDistance / backgroundDistance, the factor by which the
// overlay period is scaled relative to the background period. Both distances
// are measured from the viewer, in any consistent unit.
func Ratio(overlayDistance, backgroundDistance float64) (float64, error) {
	if backgroundDistance == 0 {
		return 0, fmt.Errorf("%w: background distance is zero", ErrDivisionByZero)
	}
	for _, v := range []float64{overlayDistance, backgroundDistance} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: distance %v must be finite and positive", ErrInvalidParameters, v)
		}
	}
	return overlayDistance / backgroundDistance, nil
}

// ScaledInterlaceWidth returns the overlay period in pixels for an interlace
// period of interlaceWidthRaw pixels.
func ScaledInterlaceWidth(interlaceWidthRaw int, parallaxRatio float64) (int, error) {
	if math.IsNaN(parallaxRatio) || math.IsInf(parallaxRatio, 0) {
		return 0, fmt.Errorf("%w: parallax ratio %v", ErrInvalidParameters, parallaxRatio)
	}
	scaled := RoundHalfUp(float64(interlaceWidthRaw) * parallaxRatio)
	if scaled < 1 {
		return 0, fmt.Errorf(
			"%w: scaled interlace width below one pixel, increase stripe width or adjust parallax ratio",
			ErrInvalidParameters)
	}
	return scaled, nil
}

// AnimationPeriod returns the printed width, in meters, of one interlace
// period of interlaceWidthRaw pixels at dpm dots per meter.
func AnimationPeriod(interlaceWidthRaw int, dpm float64) float64 {
	return float64(interlaceWidthRaw) / dpm
}

// ViewerMovementDistance returns how far the viewer moves to see one full
// animation cycle, from similar triangles: X/D1 = P/D2. A non-positive d2
// has no parallax amplification and yields the period itself.
func ViewerMovementDistance(period, d1, d2 float64) float64 {
	if d2 <= 0 {
		return period
	}
	return period * d1 / d2
}
