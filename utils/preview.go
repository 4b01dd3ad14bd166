package utils

import (
	"errors"
	"image"
	"image/color"
	"os"

	"github.com/setanarut/apng"
	"github.com/setanarut/kinegram"
	"gonum.org/v1/gonum/floats"
)

// previewDelay is the APNG frame delay in hundredths of a second.
const previewDelay = 8

// PreviewFrames simulates sliding overlay across composite through one
// overlay period in steps equal moves. Frame s shows the overlay shifted
// right by round(s*period/steps) pixels; the mask wraps so every composite
// column stays covered.
func PreviewFrames(composite, overlay *kinegram.Frame, period, steps int) ([]image.Image, error) {
	if composite == nil || overlay == nil {
		return nil, kinegram.ErrSequence
	}
	if period < 1 || steps < 1 || overlay.D < 4 {
		return nil, errors.New("preview: need a positive period, at least one step and an RGBA overlay")
	}
	w, h := composite.W, min(composite.H, overlay.H)

	// steps+1 points span [0, period]; the last equals the first and is dropped
	shifts := floats.Span(make([]float64, steps+1), 0, float64(period))[:steps]
	out := make([]image.Image, len(shifts))
	for s, shift := range shifts {
		dx := kinegram.RoundHalfUp(shift)
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				bo := composite.Offset(x, y)
				ox := ((x-dx)%overlay.W + overlay.W) % overlay.W
				oo := overlay.Offset(ox, y)
				a := uint32(overlay.Pix[oo+3])
				var px [3]uint8
				for c := range 3 {
					bg := uint32(composite.Pix[bo+min(c, composite.D-1)])
					px[c] = uint8((uint32(overlay.Pix[oo+c])*a + bg*(255-a) + 127) / 255)
				}
				img.SetRGBA(x, y, color.RGBA{px[0], px[1], px[2], 255})
			}
		}
		out[s] = img
	}
	return out, nil
}

// SavePreview renders PreviewFrames for the current composite and overlay of
// k and writes them as an animated PNG.
func SavePreview(k *kinegram.Kinegram, steps int, filename string) error {
	frames, err := PreviewFrames(k.Composite(), k.OverlayMask(), k.OverlayPeriod(), steps)
	if err != nil {
		return err
	}
	a := &apng.APNG{Images: frames}
	for range frames {
		a.Delays = append(a.Delays, previewDelay)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := apng.EncodeAll(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
