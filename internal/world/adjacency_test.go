package world

import (
	"math"
	"testing"
)

func TestCentroid_MeanOfPrimaryRing(t *testing.T) {
	w := NewScenario(WithFeature(Feature{
		Properties: map[string]any{PrimaryNameKey: "Tri"},
		Geometry: &Geometry{Type: GeometryPolygon, Polygons: []Polygon{{
			Ring{{0, 0}, {30, 0}, {0, 30}},
		}}},
	}))
	c, ok := w.Centroids.Get("Tri")
	if !ok {
		t.Fatal("expected a centroid")
	}
	// Screen vertices (180,90) (210,90) (180,60).
	if math.Abs(c.X-190) > 1e-9 || math.Abs(c.Y-80) > 1e-9 {
		t.Fatalf("expected centroid (190,80), got (%g,%g)", c.X, c.Y)
	}
	if _, ok := w.Centroids.Get("Nowhere"); ok {
		t.Fatal("unknown country should have no centroid")
	}
}

func TestProximity_Threshold(t *testing.T) {
	w := NewScenario(
		WithSquareCountry("France", 0, 0, 10),
		WithSquareCountry("Germany", 50, 0, 10),
		WithSquareCountry("Japan", 170, 0, 10),
	)
	o := w.Conquest.Oracle()
	if !o.IsAdjacent("France", "Germany") || !o.IsAdjacent("Germany", "France") {
		t.Fatal("countries 50px apart should be adjacent under 150")
	}
	if o.IsAdjacent("France", "Japan") {
		t.Fatal("countries 170px apart should not be adjacent")
	}
	if o.IsAdjacent("France", "France") {
		t.Fatal("a country is never adjacent to itself")
	}
	if o.IsAdjacent("France", "Atlantis") {
		t.Fatal("unknown country is never adjacent")
	}
}

func TestProximity_AlternateThreshold(t *testing.T) {
	w := NewScenario(
		WithAdjacency(AdjacencyProximity, AlternateAdjacencyThreshold),
		WithSquareCountry("A", 0, 0, 10),
		WithSquareCountry("B", 130, 0, 10),
	)
	if w.Conquest.Oracle().IsAdjacent("A", "B") {
		t.Fatal("130px apart should not be adjacent under 120")
	}
}

func TestProximity_DependsOnViewport(t *testing.T) {
	w := NewScenario(
		WithSquareCountry("France", 0, 0, 10),
		WithSquareCountry("Germany", 50, 0, 10),
	)
	o := w.Conquest.Oracle()
	if !o.IsAdjacent("France", "Germany") {
		t.Fatal("expected adjacency at scale 1")
	}
	w.ZoomAt(Point{X: 180, Y: 90}, 5)
	if o.IsAdjacent("France", "Germany") {
		t.Fatal("expected no adjacency once zoomed to 250px apart")
	}
	w.ZoomAt(Point{X: 180, Y: 90}, 0.2)
	if !o.IsAdjacent("France", "Germany") {
		t.Fatal("expected adjacency again after zooming back out")
	}
}

func TestBorderGraph_SharedEdges(t *testing.T) {
	s := NewGeometryStore()
	s.Load([]Feature{
		squareFeature("A", 0, 0, 10),
		squareFeature("B", 10, 0, 10),  // shares the lon=5 edge with A
		squareFeature("C", 0, -10, 10), // shares the lat=-5 edge with A
		squareFeature("D", 40, 40, 10), // isolated
	})
	g := NewBorderGraph(s, DefaultBorderEpsilon)
	if !g.IsAdjacent("A", "B") || !g.IsAdjacent("B", "A") {
		t.Fatal("A and B share an edge")
	}
	if !g.IsAdjacent("A", "C") {
		t.Fatal("A and C share an edge")
	}
	// B and C only meet at the corner (5,-5).
	if !g.IsAdjacent("B", "C") {
		t.Fatal("B and C share a corner vertex")
	}
	if g.IsAdjacent("A", "D") || len(g.Neighbours("D")) != 0 {
		t.Fatal("D is isolated")
	}
	if n := g.Neighbours("A"); len(n) != 2 || n[0] != "B" || n[1] != "C" {
		t.Fatalf("expected sorted neighbours [B C], got %v", n)
	}
}

func TestBorderGraph_EpsilonGap(t *testing.T) {
	s := NewGeometryStore()
	s.Load([]Feature{
		squareFeature("A", 0, 0, 10),
		squareFeature("B", 10.2, 0, 10), // 0.2 degree gap
	})
	if NewBorderGraph(s, 0.05).IsAdjacent("A", "B") {
		t.Fatal("0.2 gap should exceed epsilon 0.05")
	}
	if !NewBorderGraph(s, 0.3).IsAdjacent("A", "B") {
		t.Fatal("0.2 gap should be within epsilon 0.3")
	}
}

func TestBorderGraph_IgnoresViewport(t *testing.T) {
	w := NewScenario(
		WithAdjacency(AdjacencyBorder, DefaultBorderEpsilon),
		WithSquareCountry("A", 0, 0, 10),
		WithSquareCountry("B", 10, 0, 10),
	)
	w.ZoomAt(Point{}, 5)
	if !w.Conquest.Oracle().IsAdjacent("A", "B") {
		t.Fatal("border adjacency must not depend on zoom")
	}
}

func TestNewAdjacencyOracle_UnknownPolicy(t *testing.T) {
	if _, err := NewAdjacencyOracle("telepathy", NewGeometryStore(), nil, 0, 0); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
