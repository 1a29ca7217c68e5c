package world

import "math"

// Default zoom limits for the map viewport.
const (
	DefaultMinScale = 0.2
	DefaultMaxScale = 5.0
)

// Point is a position in screen space.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between two screen points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Viewport maps geographic coordinates onto the screen with an
// equirectangular projection, then applies scale and pan offset:
//
//	x = (lon+180)/360 * width  * scale + offsetX
//	y = (90-lat)/180  * height * scale + offsetY
//
// Every mutation bumps Revision so screen-space caches (centroids, draw
// lists) know when to rebuild.
type Viewport struct {
	width    float64
	height   float64
	scale    float64
	offsetX  float64
	offsetY  float64
	minScale float64
	maxScale float64
	revision uint64
}

// NewViewport creates a viewport of the given pixel size at scale 1 with no
// pan. Non-positive sizes fall back to 1 so the transform stays invertible.
func NewViewport(width, height, minScale, maxScale float64) *Viewport {
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if maxScale < minScale {
		maxScale = minScale
	}
	v := &Viewport{
		width:    positiveOr(width, 1),
		height:   positiveOr(height, 1),
		minScale: minScale,
		maxScale: maxScale,
	}
	v.scale = clamp(1, minScale, maxScale)
	return v
}

// Project converts (lon, lat) to screen coordinates.
func (v *Viewport) Project(lon, lat float64) (float64, float64) {
	x := (lon+180)/360*v.width*v.scale + v.offsetX
	y := (90-lat)/180*v.height*v.scale + v.offsetY
	return x, y
}

// ProjectPoint is Project returning a Point.
func (v *Viewport) ProjectPoint(c Coord) Point {
	x, y := v.Project(c.Lon(), c.Lat())
	return Point{X: x, Y: y}
}

// Unproject is the algebraic inverse of Project.
func (v *Viewport) Unproject(x, y float64) (float64, float64) {
	lon := (x-v.offsetX)/(v.width*v.scale)*360 - 180
	lat := 90 - (y-v.offsetY)/(v.height*v.scale)*180
	return lon, lat
}

// Pan shifts the map by (dx, dy) screen pixels. There are no bounds.
func (v *Viewport) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.offsetX += dx
	v.offsetY += dy
	v.revision++
}

// ZoomAt multiplies the scale by factor, clamped to [minScale, maxScale], and
// re-solves the offsets so the world position under anchor stays put.
// Non-positive or non-finite factors are ignored.
func (v *Viewport) ZoomAt(anchor Point, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	old := v.scale
	next := clamp(old*factor, v.minScale, v.maxScale)
	if next == old {
		return
	}
	ratio := next/old - 1
	v.offsetX -= (anchor.X - v.offsetX) * ratio
	v.offsetY -= (anchor.Y - v.offsetY) * ratio
	v.scale = next
	v.revision++
}

// Resize changes the projected map size, keeping scale and offset.
func (v *Viewport) Resize(width, height float64) {
	width = positiveOr(width, v.width)
	height = positiveOr(height, v.height)
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.revision++
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the current pan offset in screen pixels.
func (v *Viewport) Offset() (float64, float64) { return v.offsetX, v.offsetY }

// Size returns the unscaled projected map size.
func (v *Viewport) Size() (float64, float64) { return v.width, v.height }

// ScaleLimits returns the zoom clamp range.
func (v *Viewport) ScaleLimits() (float64, float64) { return v.minScale, v.maxScale }

// Revision increases every time the transform changes.
func (v *Viewport) Revision() uint64 { return v.revision }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func positiveOr(x, fallback float64) float64 {
	if x > 0 && !math.IsInf(x, 0) {
		return x
	}
	return fallback
}
