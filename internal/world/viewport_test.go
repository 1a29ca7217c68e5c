package world

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestProject_Identity(t *testing.T) {
	v := NewViewport(360, 180, DefaultMinScale, DefaultMaxScale)
	// 1 degree = 1 px at scale 1 with a 360x180 surface.
	cases := []struct {
		lon, lat, x, y float64
	}{
		{-180, 90, 0, 0},
		{0, 0, 180, 90},
		{180, -90, 360, 180},
		{10, 45, 190, 45},
	}
	for _, c := range cases {
		x, y := v.Project(c.lon, c.lat)
		if !near(x, c.x) || !near(y, c.y) {
			t.Fatalf("Project(%g,%g) = (%g,%g), want (%g,%g)", c.lon, c.lat, x, y, c.x, c.y)
		}
	}
}

func TestNewViewport_FallbackSize(t *testing.T) {
	v := NewViewport(0, -5, 0, 0)
	w, h := v.Size()
	if w != 1 || h != 1 {
		t.Fatalf("expected fallback size 1x1, got %gx%g", w, h)
	}
	if v.Scale() <= 0 {
		t.Fatalf("expected positive scale, got %g", v.Scale())
	}
}

func TestPan_ShiftsProjection(t *testing.T) {
	v := NewViewport(360, 180, DefaultMinScale, DefaultMaxScale)
	rev := v.Revision()
	v.Pan(15, -20)
	x, y := v.Project(0, 0)
	if !near(x, 195) || !near(y, 70) {
		t.Fatalf("expected (195,70) after pan, got (%g,%g)", x, y)
	}
	if v.Revision() == rev {
		t.Fatal("pan should bump the revision")
	}
	rev = v.Revision()
	v.Pan(0, 0)
	if v.Revision() != rev {
		t.Fatal("zero pan should not bump the revision")
	}
}

func TestZoomAt_ClampsScale(t *testing.T) {
	v := NewViewport(360, 180, DefaultMinScale, DefaultMaxScale)
	v.ZoomAt(Point{X: 10, Y: 10}, 100)
	if v.Scale() != DefaultMaxScale {
		t.Fatalf("expected scale clamped to %g, got %g", DefaultMaxScale, v.Scale())
	}
	v.ZoomAt(Point{X: 10, Y: 10}, 0.0001)
	if v.Scale() != DefaultMinScale {
		t.Fatalf("expected scale clamped to %g, got %g", DefaultMinScale, v.Scale())
	}
	rev := v.Revision()
	v.ZoomAt(Point{}, 0.5) // already at the lower bound
	if v.Revision() != rev {
		t.Fatal("zoom that cannot change the scale should be a no-op")
	}
}

func TestZoomAt_IgnoresBadFactor(t *testing.T) {
	v := NewViewport(360, 180, DefaultMinScale, DefaultMaxScale)
	for _, f := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		v.ZoomAt(Point{X: 50, Y: 50}, f)
		if v.Scale() != 1 {
			t.Fatalf("factor %g changed scale to %g", f, v.Scale())
		}
	}
}

func TestResize_KeepsScaleAndOffset(t *testing.T) {
	v := NewViewport(360, 180, DefaultMinScale, DefaultMaxScale)
	v.Pan(5, 5)
	v.ZoomAt(Point{}, 2)
	ox, oy := v.Offset()
	v.Resize(720, 360)
	nx, ny := v.Offset()
	if v.Scale() != 2 || nx != ox || ny != oy {
		t.Fatalf("resize changed scale/offset: scale=%g offset=(%g,%g)", v.Scale(), nx, ny)
	}
	if x, _ := v.Project(0, 0); !near(x, 360*2+ox) {
		t.Fatalf("expected projection on the new width, got x=%g", x)
	}
}

// ── properties ────────────────────────────────────────────────────────

func drawViewport(t *rapid.T) *Viewport {
	v := NewViewport(
		rapid.Float64Range(100, 4000).Draw(t, "width"),
		rapid.Float64Range(100, 4000).Draw(t, "height"),
		DefaultMinScale, DefaultMaxScale,
	)
	v.Pan(rapid.Float64Range(-5000, 5000).Draw(t, "dx"), rapid.Float64Range(-5000, 5000).Draw(t, "dy"))
	v.ZoomAt(Point{}, rapid.Float64Range(0.1, 10).Draw(t, "zoom"))
	return v
}

func TestProperty_UnprojectInvertsProject(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := drawViewport(t)
		lon := rapid.Float64Range(-180, 180).Draw(t, "lon")
		lat := rapid.Float64Range(-90, 90).Draw(t, "lat")
		x, y := v.Project(lon, lat)
		gotLon, gotLat := v.Unproject(x, y)
		if math.Abs(gotLon-lon) > 1e-6 || math.Abs(gotLat-lat) > 1e-6 {
			t.Fatalf("round trip (%g,%g) -> (%g,%g) -> (%g,%g)", lon, lat, x, y, gotLon, gotLat)
		}
	})
}

func TestProperty_ZoomKeepsAnchorFixed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := drawViewport(t)
		anchor := Point{
			X: rapid.Float64Range(0, 2000).Draw(t, "ax"),
			Y: rapid.Float64Range(0, 2000).Draw(t, "ay"),
		}
		lon, lat := v.Unproject(anchor.X, anchor.Y)
		v.ZoomAt(anchor, rapid.Float64Range(0.5, 2).Draw(t, "factor"))
		x, y := v.Project(lon, lat)
		if math.Abs(x-anchor.X) > 1e-6 || math.Abs(y-anchor.Y) > 1e-6 {
			t.Fatalf("anchor moved from (%g,%g) to (%g,%g)", anchor.X, anchor.Y, x, y)
		}
		lo, hi := v.ScaleLimits()
		if v.Scale() < lo || v.Scale() > hi {
			t.Fatalf("scale %g outside [%g,%g]", v.Scale(), lo, hi)
		}
	})
}
