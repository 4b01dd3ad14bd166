package kinegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hstack(frames ...*Frame) *Frame {
	w := 0
	for _, f := range frames {
		w += f.W
	}
	out := NewFrame(w, frames[0].H, frames[0].D)
	for y := range out.H {
		x0 := 0
		for _, f := range frames {
			for x := range f.W {
				so := f.Offset(x, y)
				copy(out.Pix[out.Offset(x0+x, y):], f.Pix[so:so+f.D])
			}
			x0 += f.W
		}
	}
	return out
}

func setOf(t *testing.T, frames ...*Frame) *FrameSet {
	t.Helper()
	fs := &FrameSet{}
	for _, f := range frames {
		require.NoError(t, fs.Append(f))
	}
	return fs
}

func TestNewInterlaceParameters(t *testing.T) {
	tests := []struct {
		name                string
		pxl, frames, width  int
		wantPxl, step, crop int
	}{
		{"exact multiple", 2, 5, 20, 2, 10, 20},
		{"cropped", 1, 4, 10, 1, 4, 8},
		{"zero clamped", 0, 3, 10, 1, 3, 9},
		{"negative clamped", -4, 3, 10, 1, 3, 9},
		{"narrower than period", 4, 3, 10, 4, 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewInterlaceParameters(tt.pxl, tt.frames, tt.width)
			assert.Equal(t, tt.wantPxl, p.PxlWidth)
			assert.Equal(t, tt.frames, p.NumFrames)
			assert.Equal(t, tt.step, p.StepSize)
			assert.Equal(t, tt.crop, p.CropWidth)
		})
	}
}

func TestInterlace_OutputSize(t *testing.T) {
	fs := &FrameSet{}
	for range 5 {
		require.NoError(t, fs.Append(NewFrame(10, 10, 3)))
	}
	out, params, err := Interlace(fs, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, out.W)
	assert.Equal(t, 10, out.H)
	assert.Equal(t, 3, out.D)
	assert.Equal(t, 10, params.CropWidth)
}

func TestInterlace_OutputCroppedSize(t *testing.T) {
	fs := &FrameSet{}
	for range 4 {
		require.NoError(t, fs.Append(NewFrame(10, 10, 3)))
	}
	out, params, err := Interlace(fs, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, out.W)
	assert.Equal(t, 8, params.CropWidth)
	assert.Zero(t, out.W%params.StepSize)
}

func TestInterlace_ColumnOrdering(t *testing.T) {
	const p = 2
	red := []uint8{255, 0, 0}
	green := []uint8{0, 255, 0}
	blue := []uint8{0, 0, 255}

	t.Run("uniform frames", func(t *testing.T) {
		fs := setOf(t,
			solidFrame(3*p, 1, red...),
			solidFrame(3*p, 1, green...),
			solidFrame(3*p, 1, blue...),
		)
		out, _, err := Interlace(fs, p)
		require.NoError(t, err)
		want := hstack(solidFrame(p, 1, red...), solidFrame(p, 1, green...), solidFrame(p, 1, blue...))
		assert.Equal(t, want.Pix, out.Pix)
	})

	t.Run("striped frames", func(t *testing.T) {
		r := solidFrame(p, 1, red...)
		rgb := hstack(r, solidFrame(p, 1, green...), solidFrame(p, 1, blue...))
		fs := setOf(t, rgb, rgb.Clone(), rgb.Clone())
		out, _, err := Interlace(fs, p)
		require.NoError(t, err)
		assert.Equal(t, hstack(r, r, r).Pix, out.Pix)
	})
}

func TestInterlace_StripesRepeatPerBlock(t *testing.T) {
	// each column value encodes frame and source column
	const w, p = 12, 3
	a := NewFrame(w, 2, 3)
	b := NewFrame(w, 2, 3)
	for y := range 2 {
		for x := range w {
			a.Pix[a.Offset(x, y)] = uint8(x)
			b.Pix[b.Offset(x, y)] = uint8(100 + x)
		}
	}
	out, params, err := Interlace(setOf(t, a, b), p)
	require.NoError(t, err)
	require.Equal(t, 12, params.CropWidth)

	want := []uint8{0, 1, 2, 100, 101, 102, 6, 7, 8, 106, 107, 108}
	for y := range 2 {
		for x := range w {
			assert.Equal(t, want[x], out.Pix[out.Offset(x, y)], "x=%d y=%d", x, y)
		}
	}
}

func TestInterlace_MixedSizesCropToMinimum(t *testing.T) {
	fs := setOf(t,
		solidFrame(9, 4, 10, 20, 30, 40),
		solidFrame(7, 6, 50, 60, 70),
	)
	out, params, err := Interlace(fs, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, params.CropWidth)
	assert.Equal(t, 4, out.H)
	assert.Equal(t, 3, out.D)
	assert.Equal(t, []uint8{10, 20, 30}, out.Pix[0:3])
	assert.Equal(t, []uint8{50, 60, 70}, out.Pix[3:6])
}

func TestInterlace_Idempotent(t *testing.T) {
	a := NewFrame(16, 3, 4)
	b := NewFrame(16, 3, 4)
	for i := range a.Pix {
		a.Pix[i] = uint8(i * 7)
		b.Pix[i] = uint8(i * 13)
	}
	fs := setOf(t, a, b)
	first, _, err := Interlace(fs, 2)
	require.NoError(t, err)
	second, _, err := Interlace(fs, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInterlace_Errors(t *testing.T) {
	t.Run("no frames", func(t *testing.T) {
		_, _, err := Interlace(&FrameSet{}, 1)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
	t.Run("zero crop width", func(t *testing.T) {
		fs := setOf(t, NewFrame(5, 5, 3), NewFrame(5, 5, 3))
		out, _, err := Interlace(fs, 3)
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.Nil(t, out)
	})
}

func TestInterlace_ClampsStripeWidth(t *testing.T) {
	fs := setOf(t, NewFrame(6, 1, 3), NewFrame(6, 1, 3))
	_, params, err := Interlace(fs, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, params.PxlWidth)
	assert.Equal(t, 2, params.StepSize)
}
