package utils

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FitToCanvas places img, scaled so its longest side equals the shortest
// canvas side, in the centre of a white print canvas of
// dpi*widthInches x dpi*heightInches pixels.
func FitToCanvas(img image.Image, dpi, widthInches, heightInches float64) (*image.NRGBA, error) {
	cw, ch := int(dpi*widthInches), int(dpi*heightInches)
	if cw <= 0 || ch <= 0 {
		return nil, errors.New("canvas: dpi and dimensions must be positive")
	}
	src := img.Bounds()
	if src.Empty() {
		return nil, errors.New("canvas: empty source image")
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scale := float64(min(cw, ch)) / float64(max(src.Dx(), src.Dy()))
	sw, sh := int(float64(src.Dx())*scale), int(float64(src.Dy())*scale)
	x0, y0 := (cw-sw)/2, (ch-sh)/2
	draw.CatmullRom.Scale(canvas, image.Rect(x0, y0, x0+sw, y0+sh), img, src, draw.Over, nil)
	return canvas, nil
}
