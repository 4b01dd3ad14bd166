package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/setanarut/kinegram"
)

const (
	InterlacedSuffix = "_interlaced"
	OverlayedSuffix  = "_overlayed"
)

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Rotate turns img counter-clockwise by angle degrees about its centre and
// keeps the original canvas size: corners that leave the canvas are cropped
// and uncovered areas are transparent.
func Rotate(img image.Image, angle float64) image.Image {
	if angle == 0 {
		return img
	}
	b := img.Bounds()
	rotated := imaging.Rotate(img, angle, color.Transparent)
	return imaging.PasteCenter(imaging.New(b.Dx(), b.Dy(), color.Transparent), rotated)
}

// LoadFrame reads path, rotates it and converts it to a frame of the given
// depth (3 or 4).
func LoadFrame(path string, rotation float64, depth int) (*kinegram.Frame, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return kinegram.FrameFromImage(Rotate(img, rotation), depth)
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveKinegram writes the composite and overlay of k as
// <dir>/<name>_interlaced.png and <dir>/<name>_overlayed.png and returns the
// two paths.
func SaveKinegram(k *kinegram.Kinegram, dir, name string) (string, string, error) {
	composite, overlay := k.Composite(), k.OverlayMask()
	if composite == nil || overlay == nil {
		return "", "", fmt.Errorf("save %s: %w", name, kinegram.ErrSequence)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	interlacedPath := filepath.Join(dir, name+InterlacedSuffix+".png")
	overlayPath := filepath.Join(dir, name+OverlayedSuffix+".png")
	if err := SaveImage(composite.Image(), interlacedPath); err != nil {
		return "", "", err
	}
	if err := SaveImage(overlay.Image(), overlayPath); err != nil {
		return "", "", err
	}
	return interlacedPath, overlayPath, nil
}
