package kinegram

import (
	"fmt"
	"image"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// Print resolution used to convert pixel periods to meters.
	// Zero or negative falls back to DefaultDotsPerMeter.
	DotsPerMeter float64
	// Colour of the opaque overlay stripes. The zero value is black, which
	// leaves the mask RGB channels at zero.
	Ink colorful.Color
	// Diagnostics sink. Nil discards all entries.
	Logger logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		DotsPerMeter: DefaultDotsPerMeter,
	}
}

// State is the position of a Kinegram in its build sequence.
type State int

const (
	StateEmpty State = iota
	StateFramesLoaded
	StateInterlaced
	StateOverlaid
)

func (s State) String() string {
	switch s {
	case StateFramesLoaded:
		return "frames-loaded"
	case StateInterlaced:
		return "interlaced"
	case StateOverlaid:
		return "overlaid"
	default:
		return "empty"
	}
}

// Kinegram builds an interlaced background and its overlay mask from an
// ordered set of animation frames. A Kinegram is not safe for concurrent use;
// run independent jobs on independent instances.
type Kinegram struct {
	opt    Options
	log    logrus.FieldLogger
	frames FrameSet
	state  State

	composite *Frame
	params    InterlaceParameters

	overlay       *Frame
	overlayPeriod int
}

func NewKinegram(opt Options) *Kinegram {
	if opt.DotsPerMeter <= 0 {
		opt.DotsPerMeter = DefaultDotsPerMeter
	}
	l := opt.Logger
	if l == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		l = discard
	}
	k := &Kinegram{opt: opt, log: l}
	k.log.Debug("kinegram created")
	return k
}

func (k *Kinegram) State() State {
	return k.state
}

func (k *Kinegram) Frames() *FrameSet {
	return &k.frames
}

// Append adds a background frame. Appending after interlacing keeps the
// current composite and overlay until Interlace is called again.
func (k *Kinegram) Append(f *Frame) error {
	if err := k.frames.Append(f); err != nil {
		return err
	}
	if k.state == StateEmpty {
		k.state = StateFramesLoaded
	}
	h, w, d, _ := k.frames.Dims()
	k.log.WithFields(logrus.Fields{
		"frame":       k.frames.Len() - 1,
		"interHeight": h,
		"interWidth":  w,
		"interDepth":  d,
	}).Debug("frame appended")
	return nil
}

// AppendImage converts img to a frame of the given depth and appends it.
func (k *Kinegram) AppendImage(img image.Image, depth int) error {
	f, err := FrameFromImage(img, depth)
	if err != nil {
		return err
	}
	return k.Append(f)
}

// Interlace rebuilds the composite with stripes pxlWidth pixels wide and
// drops any previously generated overlay. On failure the previous composite
// and state are kept.
func (k *Kinegram) Interlace(pxlWidth int) (*Frame, error) {
	composite, params, err := Interlace(&k.frames, pxlWidth)
	if err != nil {
		k.log.WithError(err).WithField("pxlWidth", pxlWidth).Debug("interlace failed")
		return nil, err
	}
	k.composite = composite
	k.params = params
	k.overlay = nil
	k.overlayPeriod = 0
	k.state = StateInterlaced
	k.log.WithFields(logrus.Fields{
		"pxlWidth":  params.PxlWidth,
		"numFrames": params.NumFrames,
		"stepsize":  params.StepSize,
		"cropWidth": params.CropWidth,
	}).Debug("interlaced")
	return composite, nil
}

// Overlay builds the overlay mask for the current composite. parallaxRatio is
// usually obtained from Ratio; overlap is the opaque fraction of each period.
func (k *Kinegram) Overlay(parallaxRatio, overlap float64) (*Frame, error) {
	if k.state != StateInterlaced && k.state != StateOverlaid {
		return nil, fmt.Errorf("%w (state %s)", ErrSequence, k.state)
	}
	overlay, period, err := generateOverlay(k.composite, k.InterlaceWidth(), parallaxRatio, overlap, k.opt.Ink)
	if err != nil {
		k.log.WithError(err).WithFields(logrus.Fields{
			"parallaxRatio": parallaxRatio,
			"overlap":       overlap,
		}).Debug("overlay failed")
		return nil, err
	}
	k.overlay = overlay
	k.overlayPeriod = period
	k.state = StateOverlaid
	k.log.WithFields(logrus.Fields{
		"period":       period,
		"overlap":      overlap,
		"overlayWidth": overlay.W,
	}).Debug("overlay generated")
	return overlay, nil
}

// Composite returns the last interlaced composite, or nil.
func (k *Kinegram) Composite() *Frame {
	return k.composite
}

// OverlayMask returns the overlay for the current composite, or nil.
func (k *Kinegram) OverlayMask() *Frame {
	return k.overlay
}

// InterlaceWidth is the pre-crop interlace period, pxlWidth*numFrames, of the
// last successful Interlace call. Zero before interlacing.
func (k *Kinegram) InterlaceWidth() int {
	return k.params.StepSize
}

func (k *Kinegram) Parameters() InterlaceParameters {
	return k.params
}

// OverlayPeriod is the width in pixels of one overlay period, zero until an
// overlay has been generated.
func (k *Kinegram) OverlayPeriod() int {
	return k.overlayPeriod
}

// AnimationPeriod returns the printed width, in meters, of one interlace
// period of the current composite.
func (k *Kinegram) AnimationPeriod() (float64, error) {
	if k.composite == nil {
		return 0, ErrSequence
	}
	return AnimationPeriod(k.InterlaceWidth(), k.opt.DotsPerMeter), nil
}
