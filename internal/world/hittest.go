package world

import (
	"fmt"
	"math"
)

// Hit-test strategy names accepted in config.
const (
	HitVertex  = "vertex"
	HitCapital = "capital"
	HitPolygon = "polygon"
)

// DefaultHitRadius is the screen-space pick radius in pixels.
const DefaultHitRadius = 5.0

// HitTester resolves a screen point to a country. Countries with missing
// geometry or capital data are skipped, never fatal.
type HitTester interface {
	HitTest(p Point) (CountryID, bool)
}

// VertexHitTester returns the first country, in load order, that has a ring
// vertex within Radius pixels of the query point.
type VertexHitTester struct {
	Store  *GeometryStore
	View   *Viewport
	Radius float64
}

// HitTest implements HitTester.
func (h *VertexHitTester) HitTest(p Point) (CountryID, bool) {
	r2 := h.Radius * h.Radius
	for _, c := range h.Store.Countries() {
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				for _, v := range ring {
					x, y := h.View.Project(v.Lon(), v.Lat())
					dx, dy := x-p.X, y-p.Y
					if dx*dx+dy*dy <= r2 {
						return c.ID, true
					}
				}
			}
		}
	}
	return "", false
}

// CapitalHitTester treats capital markers as the click targets and returns
// the nearest one within Radius. Ties go to the earlier country.
type CapitalHitTester struct {
	Store  *GeometryStore
	View   *Viewport
	Radius float64
}

// HitTest implements HitTester.
func (h *CapitalHitTester) HitTest(p Point) (CountryID, bool) {
	best := math.Inf(1)
	var hit CountryID
	found := false
	for _, c := range h.Store.Countries() {
		if c.Capital == nil {
			continue
		}
		d := h.View.ProjectPoint(*c.Capital).Dist(p)
		if d <= h.Radius && d < best {
			best = d
			hit = c.ID
			found = true
		}
	}
	return hit, found
}

// PolygonHitTester maps the point back to world coordinates and returns the
// first country whose outer ring contains it outside of any hole.
type PolygonHitTester struct {
	Store *GeometryStore
	View  *Viewport
}

// HitTest implements HitTester.
func (h *PolygonHitTester) HitTest(p Point) (CountryID, bool) {
	lon, lat := h.View.Unproject(p.X, p.Y)
	for _, c := range h.Store.Countries() {
		for _, poly := range c.Polygons {
			if polygonContains(poly, lon, lat) {
				return c.ID, true
			}
		}
	}
	return "", false
}

func polygonContains(poly Polygon, lon, lat float64) bool {
	if len(poly) == 0 || !ringContains(poly[0], lon, lat) {
		return false
	}
	for _, hole := range poly[1:] {
		if ringContains(hole, lon, lat) {
			return false
		}
	}
	return true
}

// ringContains is the even-odd ray casting test.
func ringContains(r Ring, x, y float64) bool {
	if len(r) < 3 {
		return false
	}
	inside := false
	j := len(r) - 1
	for i := range r {
		xi, yi := r[i].Lon(), r[i].Lat()
		xj, yj := r[j].Lon(), r[j].Lat()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// NewHitTester builds the tester named by strategy.
func NewHitTester(strategy string, store *GeometryStore, view *Viewport, radius float64) (HitTester, error) {
	if radius <= 0 {
		radius = DefaultHitRadius
	}
	switch strategy {
	case "", HitVertex:
		return &VertexHitTester{Store: store, View: view, Radius: radius}, nil
	case HitCapital:
		return &CapitalHitTester{Store: store, View: view, Radius: radius}, nil
	case HitPolygon:
		return &PolygonHitTester{Store: store, View: view}, nil
	default:
		return nil, fmt.Errorf("unknown hit-test strategy %q", strategy)
	}
}
