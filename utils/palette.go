package utils

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the names returned by PaletteMethod.String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, errors.New("unknown palette method " + s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	luminance := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		la, lb := luminance(a), luminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

// ExtractPalette finds k colors shared by all frames, so every animation
// frame is reduced against the same palette and stripes from different
// frames print with identical inks.
func ExtractPalette(frames []image.Image, k int, method PaletteMethod) ([]colorful.Color, error) {
	if k <= 0 || len(frames) == 0 {
		return nil, errors.New("palette: need at least one frame and one color")
	}
	var p []colorful.Color
	if method == PaletteMethodKMeans {
		p = extractKMeansPalette(frames, k)
	}
	if len(p) == 0 {
		p = extractDominantPalette(frames, k)
	}
	if len(p) == 0 {
		return nil, errors.New("palette: no colors found")
	}
	return p, nil
}

func extractDominantPalette(frames []image.Image, k int) []colorful.Color {
	nCandidates := max(24, k*8)
	var weighted []weightedColor
	for _, img := range frames {
		for _, c := range dominantcolor.FindWeight(img, nCandidates) {
			col, _ := colorful.MakeColor(c.RGBA)
			// frames contribute equally regardless of how many candidates they yield
			w := c.Weight / float64(len(frames))
			if w <= 0 {
				w = 1e-6
			}
			weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
		}
	}
	return selectDiverseWeightedColors(weighted, k)
}

// selectDiverseWeightedColors greedily picks k candidates, seeded with the
// heaviest one, maximising Lab distance to the colors already picked scaled
// by candidate weight.
func selectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	for _, c := range cands {
		maxW = max(maxW, c.Weight)
	}
	if maxW <= 0 {
		maxW = 1
	}

	picked := make([]int, 0, k)
	used := make([]bool, len(cands))
	seed := 0
	for i := range cands {
		if cands[i].Weight > cands[seed].Weight {
			seed = i
		}
	}
	picked = append(picked, seed)
	used[seed] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			minDist := math.MaxFloat64
			for _, s := range picked {
				minDist = min(minDist, c.Col.DistanceLab(cands[s].Col))
			}
			score := minDist * (0.55 + 0.45*math.Sqrt(max(c.Weight, 1e-6)/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, len(picked))
	for i, idx := range picked {
		out[i] = cands[idx].Col
	}
	return out
}

func extractKMeansPalette(frames []image.Image, k int) []colorful.Color {
	// Subsample to keep kmeans tractable on large frame sets.
	const maxSamples = 12000
	perFrame := max(maxSamples/len(frames), 1)

	var dataset clusters.Observations
	for _, img := range frames {
		b := img.Bounds()
		width, height := b.Dx(), b.Dy()
		if width == 0 || height == 0 {
			continue
		}
		step := 1
		if width*height > perFrame {
			step = int(math.Sqrt(float64(width*height)/float64(perFrame))) + 1
		}
		for y := b.Min.Y; y < b.Max.Y; y += step {
			for x := b.Min.X; x < b.Max.X; x += step {
				r16, g16, b16, a16 := img.At(x, y).RGBA()
				if a16 == 0 {
					continue
				}
				dataset = append(dataset, clusters.Coordinates{
					float64(r16) / 65535.0,
					float64(g16) / 65535.0,
					float64(b16) / 65535.0,
				})
			}
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return selectDiverseWeightedColors(weighted, k)
}

// Posterize maps every pixel of img to the nearest palette color in Lab
// space. Alpha is kept.
func Posterize(img image.Image, palette []colorful.Color) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if len(palette) == 0 {
		return out
	}
	inks := make([]color.NRGBA, len(palette))
	for i, c := range palette {
		r, g, bl := c.Clamped().RGB255()
		inks[i] = color.NRGBA{R: r, G: g, B: bl, A: 255}
	}
	// frames are flat artwork; caching by source color avoids most Lab conversions
	cache := make(map[color.NRGBA]int)
	for y := range b.Dy() {
		for x := range b.Dx() {
			src := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			key := color.NRGBA{R: src.R, G: src.G, B: src.B, A: 255}
			idx, ok := cache[key]
			if !ok {
				col, _ := colorful.MakeColor(key)
				best := math.MaxFloat64
				for i, p := range palette {
					if d := col.DistanceLab(p); d < best {
						best, idx = d, i
					}
				}
				cache[key] = idx
			}
			ink := inks[idx]
			ink.A = src.A
			out.SetNRGBA(x, y, ink)
		}
	}
	return out
}

// SavePalette writes the palette as a row of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return errors.New("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}
