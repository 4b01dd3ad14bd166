package kinegram

// dimension is a running minimum that is unset until the first merge.
type dimension struct {
	v   int
	set bool
}

func (d *dimension) merge(v int) {
	if !d.set || v < d.v {
		d.v = v
		d.set = true
	}
}

// FrameSet is an append-only, ordered list of background frames. Frame order
// fixes which stripe of each interlace period a frame occupies.
type FrameSet struct {
	frames []*Frame

	interHeight dimension
	interWidth  dimension
	interDepth  dimension
}

// Append adds f and folds its dimensions into the running minimums. Frames of
// differing sizes are accepted; the excess is cropped when interlacing.
func (fs *FrameSet) Append(f *Frame) error {
	if err := f.validate(); err != nil {
		return err
	}
	fs.interHeight.merge(f.H)
	fs.interWidth.merge(f.W)
	fs.interDepth.merge(f.D)
	fs.frames = append(fs.frames, f)
	return nil
}

func (fs *FrameSet) Len() int {
	return len(fs.frames)
}

func (fs *FrameSet) Frame(i int) *Frame {
	return fs.frames[i]
}

// Dims returns the minimum height, width and depth over all frames. ok is
// false while the set is empty.
func (fs *FrameSet) Dims() (h, w, d int, ok bool) {
	if !fs.interHeight.set {
		return 0, 0, 0, false
	}
	return fs.interHeight.v, fs.interWidth.v, fs.interDepth.v, true
}
