package world

import "testing"

func hitWorld(strategy string, opts ...ScenarioOption) *World {
	return NewScenario(append([]ScenarioOption{WithHitTest(strategy, DefaultHitRadius)}, opts...)...)
}

func TestVertexHit_WithinRadius(t *testing.T) {
	// Square corners at lon/lat ±5 around (0,0) -> screen (175..185, 85..95).
	w := hitWorld(HitVertex, WithSquareCountry("France", 0, 0, 10))
	if id, ok := w.Hit.HitTest(Point{X: 178, Y: 88}); !ok || id != "France" {
		t.Fatalf("expected France near corner (175,85), got %q ok=%v", id, ok)
	}
	// The centre is more than 5px from every vertex.
	if id, ok := w.Hit.HitTest(Point{X: 180, Y: 90}); ok {
		t.Fatalf("vertex strategy should miss the centre, got %q", id)
	}
}

func TestVertexHit_FirstInLoadOrderWins(t *testing.T) {
	w := hitWorld(HitVertex,
		WithSquareCountry("First", 0, 0, 10),
		WithSquareCountry("Second", 10, 0, 10), // shares the corner at lon 5
	)
	if id, _ := w.Hit.HitTest(Point{X: 185, Y: 85}); id != "First" {
		t.Fatalf("expected First on a shared vertex, got %q", id)
	}
}

func TestVertexHit_FollowsZoom(t *testing.T) {
	w := hitWorld(HitVertex, WithSquareCountry("France", 0, 0, 10))
	w.ZoomAt(Point{X: 180, Y: 90}, 2)
	// Corner (-5,5) now sits at (170,80).
	if id, ok := w.Hit.HitTest(Point{X: 170, Y: 80}); !ok || id != "France" {
		t.Fatalf("expected France at zoomed corner, got %q ok=%v", id, ok)
	}
}

func TestCapitalHit_Nearest(t *testing.T) {
	// Capitals project to x=180 and x=225 exactly.
	w := NewScenario(
		WithHitTest(HitCapital, 30),
		WithSquareCountry("A", 0, 0, 10),
		WithSquareCountry("B", 45, 0, 10),
		WithCapital("A", 0, 0),
		WithCapital("B", 45, 0),
	)
	if id, ok := w.Hit.HitTest(Point{X: 220, Y: 90}); !ok || id != "B" {
		t.Fatalf("expected nearest capital B, got %q ok=%v", id, ok)
	}
	if id, ok := w.Hit.HitTest(Point{X: 202.5, Y: 90}); !ok || id != "A" {
		t.Fatalf("expected equidistant tie to go to A, got %q ok=%v", id, ok)
	}
	if _, ok := w.Hit.HitTest(Point{X: 180, Y: 150}); ok {
		t.Fatal("expected miss far from any capital")
	}
}

func TestCapitalHit_SkipsMissingCapital(t *testing.T) {
	w := hitWorld(HitCapital, WithSquareCountry("A", 0, 0, 10))
	if _, ok := w.Hit.HitTest(Point{X: 180, Y: 90}); ok {
		t.Fatal("country without capital should not be hit")
	}
}

func TestPolygonHit_InsideAndHole(t *testing.T) {
	donut := Feature{
		Properties: map[string]any{PrimaryNameKey: "Donut"},
		Geometry: &Geometry{Type: GeometryPolygon, Polygons: []Polygon{{
			SquareRing(0, 0, 20),
			SquareRing(0, 0, 6),
		}}},
	}
	w := hitWorld(HitPolygon, WithFeature(donut))
	if id, ok := w.Hit.HitTest(Point{X: 188, Y: 90}); !ok || id != "Donut" {
		t.Fatalf("expected Donut inside the ring, got %q ok=%v", id, ok)
	}
	if id, ok := w.Hit.HitTest(Point{X: 180, Y: 90}); ok {
		t.Fatalf("expected miss inside the hole, got %q", id)
	}
	if _, ok := w.Hit.HitTest(Point{X: 300, Y: 10}); ok {
		t.Fatal("expected miss outside")
	}
}

func TestNewHitTester_UnknownStrategy(t *testing.T) {
	if _, err := NewHitTester("lasso", NewGeometryStore(), NewViewport(1, 1, 0, 0), 0); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestRingContains_Degenerate(t *testing.T) {
	if ringContains(Ring{{0, 0}, {1, 1}}, 0.5, 0.5) {
		t.Fatal("two-point ring contains nothing")
	}
}
