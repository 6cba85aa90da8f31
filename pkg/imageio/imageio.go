// Package imageio opens the image formats the viewer can display
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the lower-case file extensions that can be opened
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsSupported reports whether path has a supported image extension
func IsSupported(path string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Open decodes an image and applies its EXIF orientation, so the result
// matches what the label coordinates refer to
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if isWebP(path) {
		if img, werr := decodeWebP(path); werr == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("failed to open image %s: %w", path, err)
}

// Dimensions returns the displayed size of an image. Formats that can carry
// an EXIF orientation are decoded fully; others only read their header.
func Dimensions(path string) (width, height int, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
		img, err := Open(path)
		if err != nil {
			return 0, 0, err
		}
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		if isWebP(path) {
			if img, werr := decodeWebP(path); werr == nil {
				b := img.Bounds()
				return b.Dx(), b.Dy(), nil
			}
		}
		return 0, 0, fmt.Errorf("failed to read image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Downscale limits the longer side of img to maxSide pixels. Smaller images
// and a non-positive maxSide return img unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

func isWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".webp")
}

// decodeWebP falls back to libwebp for files the pure Go decoder rejects
func decodeWebP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return webp.Decode(f)
}
