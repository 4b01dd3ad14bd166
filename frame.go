package kinegram

import (
	"fmt"
	"image"
	"image/color"
)

// Frame is an 8-bit pixel buffer. Pix is interleaved row-major,
// len = H*W*D.
type Frame struct {
	W, H int
	D    int // channels per pixel: 3 = RGB, 4 = RGBA
	Pix  []uint8
}

func NewFrame(w, h, d int) *Frame {
	return &Frame{
		W:   w,
		H:   h,
		D:   d,
		Pix: make([]uint8, w*h*d),
	}
}

func pixOffset(w, d, x, y int) int {
	return (y*w + x) * d
}

// Offset returns the index of channel 0 of pixel (x, y) in Pix.
func (f *Frame) Offset(x, y int) int {
	return pixOffset(f.W, f.D, x, y)
}

func (f *Frame) validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidParameters)
	}
	if f.W <= 0 || f.H <= 0 || f.D <= 0 {
		return fmt.Errorf("%w: frame dimensions %dx%dx%d must be positive", ErrInvalidParameters, f.H, f.W, f.D)
	}
	if len(f.Pix) != f.W*f.H*f.D {
		return fmt.Errorf("%w: frame buffer holds %d values, want %d", ErrInvalidParameters, len(f.Pix), f.W*f.H*f.D)
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Pix = append([]uint8(nil), f.Pix...)
	return &c
}

// FrameFromImage converts img to a frame with depth 3 (alpha dropped) or
// 4 (non-premultiplied alpha kept).
func FrameFromImage(img image.Image, depth int) (*Frame, error) {
	if depth != 3 && depth != 4 {
		return nil, fmt.Errorf("%w: depth %d, want 3 or 4", ErrInvalidParameters, depth)
	}
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy(), depth)
	for y := range f.H {
		for x := range f.W {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := f.Offset(x, y)
			f.Pix[off] = c.R
			f.Pix[off+1] = c.G
			f.Pix[off+2] = c.B
			if depth == 4 {
				f.Pix[off+3] = c.A
			}
		}
	}
	return f, nil
}

// Image wraps the frame for encoding. Depth 4 becomes *image.NRGBA, depth 3
// an opaque *image.RGBA and depths 1-2 a gray image built from channel 0.
func (f *Frame) Image() image.Image {
	rect := image.Rect(0, 0, f.W, f.H)
	switch {
	case f.D >= 4:
		out := image.NewNRGBA(rect)
		for y := range f.H {
			for x := range f.W {
				off := f.Offset(x, y)
				out.SetNRGBA(x, y, color.NRGBA{f.Pix[off], f.Pix[off+1], f.Pix[off+2], f.Pix[off+3]})
			}
		}
		return out
	case f.D == 3:
		out := image.NewRGBA(rect)
		for y := range f.H {
			for x := range f.W {
				off := f.Offset(x, y)
				out.SetRGBA(x, y, color.RGBA{f.Pix[off], f.Pix[off+1], f.Pix[off+2], 255})
			}
		}
		return out
	default:
		out := image.NewGray(rect)
		for y := range f.H {
			for x := range f.W {
				out.SetGray(x, y, color.Gray{Y: f.Pix[f.Offset(x, y)]})
			}
		}
		return out
	}
}
