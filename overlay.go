package kinegram

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GenerateOverlay builds the black stripe mask for composite. See
// GenerateInkOverlay.
func GenerateOverlay(composite *Frame, interlaceWidthRaw int, parallaxRatio, overlap float64) (*Frame, error) {
	return GenerateInkOverlay(composite, interlaceWidthRaw, parallaxRatio, overlap, colorful.Color{})
}

// CheckOverlap reports whether overlap is a usable opaque fraction.
func CheckOverlap(overlap float64) error {
	if math.IsNaN(overlap) || overlap < 0 || overlap > 1 {
		return fmt.Errorf("%w: overlap %v outside [0, 1]", ErrInvalidParameters, overlap)
	}
	return nil
}

// GenerateInkOverlay builds the RGBA overlay mask for composite. One period
// is RoundHalfUp(interlaceWidthRaw*parallaxRatio) pixels wide; its first
// RoundHalfUp(period*overlap) columns are opaque ink, the rest fully
// transparent. The period is repeated floor(composite.W/period) times, so
// trailing composite columns that do not fill a whole period are not covered.
// The mask is composite.H rows high.
func GenerateInkOverlay(composite *Frame, interlaceWidthRaw int, parallaxRatio, overlap float64, ink colorful.Color) (*Frame, error) {
	out, _, err := generateOverlay(composite, interlaceWidthRaw, parallaxRatio, overlap, ink)
	return out, err
}

// generateOverlay also returns the overlay period in pixels.
func generateOverlay(composite *Frame, interlaceWidthRaw int, parallaxRatio, overlap float64, ink colorful.Color) (*Frame, int, error) {
	if composite == nil {
		return nil, 0, ErrSequence
	}
	period, err := ScaledInterlaceWidth(interlaceWidthRaw, parallaxRatio)
	if err != nil {
		return nil, 0, err
	}
	if err := CheckOverlap(overlap); err != nil {
		return nil, 0, err
	}
	opaque := RoundHalfUp(float64(period) * overlap)

	// A composite narrower than one period still gets a single period.
	copies := max(composite.W/period, 1)

	r, g, b := ink.Clamped().RGB255()
	module := make([]uint8, period*4)
	for x := range opaque {
		module[x*4] = r
		module[x*4+1] = g
		module[x*4+2] = b
		module[x*4+3] = 255
	}

	out := NewFrame(period*copies, composite.H, 4)
	rowLen := out.W * 4
	for y := range out.H {
		row := out.Pix[y*rowLen : (y+1)*rowLen]
		for c := range copies {
			copy(row[c*len(module):], module)
		}
	}
	return out, period, nil
}
