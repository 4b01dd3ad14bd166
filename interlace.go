package kinegram

import "fmt"

// InterlaceParameters holds the stripe geometry of one interlace run.
type InterlaceParameters struct {
	PxlWidth  int // stripe width per frame
	NumFrames int
	StepSize  int // PxlWidth * NumFrames, one animation period in pixels
	CropWidth int // largest multiple of StepSize not exceeding the frame width
}

// ClampStripeWidth returns pxlWidth floored to 1.
func ClampStripeWidth(pxlWidth int) int {
	return max(pxlWidth, 1)
}

// NewInterlaceParameters derives the stripe geometry for numFrames frames of
// common width interWidth. pxlWidth below 1 is clamped to 1.
func NewInterlaceParameters(pxlWidth, numFrames, interWidth int) InterlaceParameters {
	p := ClampStripeWidth(pxlWidth)
	step := p * numFrames
	crop := 0
	if step > 0 {
		crop = (interWidth / step) * step
	}
	return InterlaceParameters{
		PxlWidth:  p,
		NumFrames: numFrames,
		StepSize:  step,
		CropWidth: crop,
	}
}

// Interlace stripes the frames of fs column-wise into one composite of size
// (interHeight, CropWidth, interDepth). Each StepSize-wide block of the output
// holds one PxlWidth-wide stripe per frame, in insertion order, taken from
// the same block of that frame.
func Interlace(fs *FrameSet, pxlWidth int) (*Frame, InterlaceParameters, error) {
	h, w, d, ok := fs.Dims()
	if !ok {
		return nil, InterlaceParameters{}, fmt.Errorf("%w: no frames to interlace", ErrInvalidParameters)
	}
	params := NewInterlaceParameters(pxlWidth, fs.Len(), w)
	if params.CropWidth == 0 {
		return nil, params, fmt.Errorf(
			"%w: frame width %d is narrower than one period of %d px (%d frames x %d px)",
			ErrInvalidParameters, w, params.StepSize, params.NumFrames, params.PxlWidth)
	}

	out := NewFrame(params.CropWidth, h, d)
	for i, src := range fs.frames {
		dstCol := i * params.PxlWidth
		for y := range h {
			for block := 0; block < params.CropWidth; block += params.StepSize {
				for j := range params.PxlWidth {
					so := src.Offset(block+j, y)
					do := out.Offset(block+dstCol+j, y)
					copy(out.Pix[do:do+d], src.Pix[so:so+d])
				}
			}
		}
	}
	return out, params, nil
}
