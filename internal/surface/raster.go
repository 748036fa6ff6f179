package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/bethropolis/doodle/internal/history"
	"github.com/bethropolis/doodle/internal/logger"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Raster is a transparent RGBA drawing layer. The background color is not part of
// the layer; it is composited underneath when presenting or exporting.
type Raster struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewRaster creates a cleared raster of the given size.
func NewRaster(width, height int) *Raster {
	width, height = clampSize(width, height)
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
	}
}

func clampSize(width, height int) (int, int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Image exposes the live layer for presentation. Callers must not retain it across draws.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Bounds returns the surface rectangle, anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return r.img.Bounds()
}

// Resize replaces the layer with a cleared one of the new size.
// Like a browser canvas, content does not survive a dimension change.
func (r *Raster) Resize(width, height int) {
	width, height = clampSize(width, height)
	if r.img.Bounds().Dx() == width && r.img.Bounds().Dy() == height {
		return
	}
	logger.DebugTagf("surface", "Raster: resize %dx%d -> %dx%d", r.img.Bounds().Dx(), r.img.Bounds().Dy(), width, height)
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.ras = vector.NewRasterizer(width, height)
}

// SnapshotPixels captures the entire layer.
func (r *Raster) SnapshotPixels() *history.Snapshot {
	return history.NewSnapshot(r.img)
}

// RestorePixels copies s onto the layer at the origin, replacing the covered pixels.
// Parts of s outside the layer are clipped; a nil snapshot is ignored.
func (r *Raster) RestorePixels(s *history.Snapshot) {
	if s == nil {
		return
	}
	draw.Draw(r.img, s.Bounds().Intersect(r.img.Bounds()), s.Image(), image.Point{}, draw.Src)
}

// Clear makes every pixel transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// StrokeSegment draws a round-capped segment, the unit of freehand drawing.
func (r *Raster) StrokeSegment(from, to Point, c color.Color, width float64) {
	r.begin()
	r.addCapsule(from, to, width/2)
	r.fill(c)
}

// StrokeLine draws a straight line from a to b.
func (r *Raster) StrokeLine(a, b Point, c color.Color, width float64) {
	r.StrokeSegment(a, b, c, width)
}

// StrokeRect outlines the rectangle with opposite corners a and b.
func (r *Raster) StrokeRect(a, b Point, c color.Color, width float64) {
	lo := Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
	hi := Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
	h := Point{width / 2, width / 2}

	r.begin()
	r.addPolygon(rectPoints(lo.sub(h), hi.add(h)), true)
	if hi.X-lo.X > width && hi.Y-lo.Y > width {
		r.addPolygon(rectPoints(lo.add(h), hi.sub(h)), false)
	}
	r.fill(c)
}

// StrokeCircle outlines the circle with the given center and radius.
func (r *Raster) StrokeCircle(center Point, radius float64, c color.Color, width float64) {
	h := width / 2
	r.begin()
	r.addPolygon(circlePoints(center, radius+h), true)
	if inner := radius - h; inner > 0 {
		r.addPolygon(circlePoints(center, inner), false)
	}
	r.fill(c)
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
}

func (r *Raster) fill(c color.Color) {
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// addCapsule adds a segment body plus a disc at each end. All subpaths share one
// winding so their overlaps add up instead of cancelling.
func (r *Raster) addCapsule(a, b Point, radius float64) {
	if radius <= 0 {
		return
	}
	if d := a.Dist(b); d > 0 {
		dir := b.sub(a).scale(1 / d)
		n := Point{-dir.Y, dir.X}.scale(radius)
		r.addPolygon([]Point{a.add(n), b.add(n), b.sub(n), a.sub(n)}, true)
	}
	r.addPolygon(circlePoints(a, radius), true)
	if b != a {
		r.addPolygon(circlePoints(b, radius), true)
	}
}

// addPolygon adds a closed subpath. positive selects the winding; a hole uses the
// opposite winding of its outline.
func (r *Raster) addPolygon(pts []Point, positive bool) {
	if len(pts) < 3 {
		return
	}
	if (signedArea(pts) >= 0) != positive {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	r.ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p.X), float32(p.Y))
	}
	r.ras.ClosePath()
}

func signedArea(pts []Point) float64 {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func rectPoints(lo, hi Point) []Point {
	return []Point{lo, {hi.X, lo.Y}, hi, {lo.X, hi.Y}}
}

func circlePoints(c Point, radius float64) []Point {
	n := int(math.Ceil(2 * math.Pi * radius / 2))
	if n < 12 {
		n = 12
	}
	if n > 360 {
		n = 360
	}
	pts := make([]Point, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{c.X + radius*math.Cos(t), c.Y + radius*math.Sin(t)}
	}
	return pts
}
