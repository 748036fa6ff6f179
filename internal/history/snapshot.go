package history

import (
	"image"

	"golang.org/x/image/draw"
)

// Snapshot is an immutable capture of the whole drawing surface at one instant.
// The history manager only relies on its identity and byte size.
type Snapshot struct {
	img *image.RGBA
}

// NewSnapshot copies src into a new Snapshot; later changes to src are not visible through it.
func NewSnapshot(src *image.RGBA) *Snapshot {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Snapshot{img: dst}
}

// Image returns the captured pixels. Callers must not modify the result.
func (s *Snapshot) Image() *image.RGBA {
	return s.img
}

// Bounds returns the dimensions of the captured surface, anchored at the origin.
func (s *Snapshot) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// ByteSize is the memory held by the pixel data.
func (s *Snapshot) ByteSize() int {
	return len(s.img.Pix)
}
