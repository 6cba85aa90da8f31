// Package imagelist keeps the ordered images of a folder and a cursor into
// them for next/previous navigation
package imagelist

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/philipparndt/golabel/pkg/imageio"
)

// List is an ordered set of image paths with a current position
type List struct {
	paths []string
	index int
	Wrap  bool // next on the last image goes to the first, and vice versa
}

// New creates a list of paths in natural order, positioned on the first one
func New(paths []string, wrap bool) *List {
	sorted := slices.Clone(paths)
	slices.SortFunc(sorted, func(a, b string) int {
		return NaturalCompare(filepath.Base(a), filepath.Base(b))
	})
	return &List{paths: sorted, Wrap: wrap}
}

// Scan lists the supported images of a directory
func Scan(dir string, wrap bool) (*List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsSupported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return New(paths, wrap), nil
}

// Open lists the folder of path. When path is an image, the list is
// positioned on it; when it is a directory, on its first image.
func Open(path string, wrap bool) (*List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return Scan(path, wrap)
	}

	l, err := Scan(filepath.Dir(path), wrap)
	if err != nil {
		return nil, err
	}
	if !l.Seek(path) {
		return nil, fmt.Errorf("unsupported image type: %s", path)
	}
	return l, nil
}

// Len returns the number of images
func (l *List) Len() int { return len(l.paths) }

// Index returns the current position, or -1 for an empty list
func (l *List) Index() int {
	if len(l.paths) == 0 {
		return -1
	}
	return l.index
}

// Paths returns the images in order
func (l *List) Paths() []string { return slices.Clone(l.paths) }

// Current returns the image at the current position
func (l *List) Current() (string, bool) {
	if len(l.paths) == 0 {
		return "", false
	}
	return l.paths[l.index], true
}

// Next advances to the next image and reports whether the position changed
func (l *List) Next() bool { return l.step(1) }

// Prev goes back to the previous image and reports whether the position changed
func (l *List) Prev() bool { return l.step(-1) }

// First jumps to the first image
func (l *List) First() bool { return l.SetIndex(0) }

// Last jumps to the last image
func (l *List) Last() bool { return l.SetIndex(len(l.paths) - 1) }

// SetIndex moves to position i and reports whether the position changed
func (l *List) SetIndex(i int) bool {
	if i < 0 || i >= len(l.paths) || i == l.index {
		return false
	}
	l.index = i
	return true
}

// Seek moves to the image with the given path and reports whether it is
// part of the list
func (l *List) Seek(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for i, p := range l.paths {
		if pa, err := filepath.Abs(p); err == nil && pa == abs {
			l.index = i
			return true
		}
	}
	return false
}

func (l *List) step(delta int) bool {
	n := len(l.paths)
	if n < 2 {
		return false
	}
	i := l.index + delta
	if i < 0 || i >= n {
		if !l.Wrap {
			return false
		}
		i = (i + n) % n
	}
	l.index = i
	return true
}
