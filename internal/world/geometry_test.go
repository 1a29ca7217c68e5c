package world

import (
	"math"
	"testing"
)

func squareFeature(name string, lon, lat, size float64) Feature {
	return Feature{
		Properties: map[string]any{PrimaryNameKey: name},
		Geometry:   &Geometry{Type: GeometryPolygon, Polygons: []Polygon{{SquareRing(lon, lat, size)}}},
	}
}

func TestResolveName_Precedence(t *testing.T) {
	cases := []struct {
		props map[string]any
		want  string
	}{
		{map[string]any{PrimaryNameKey: "France", FallbackNameKey: "Fr"}, "France"},
		{map[string]any{FallbackNameKey: "Fr"}, "Fr"},
		{map[string]any{PrimaryNameKey: "", FallbackNameKey: "Fr"}, "Fr"},
		{map[string]any{PrimaryNameKey: 42}, UnknownName},
		{nil, UnknownName},
	}
	for _, c := range cases {
		if got := ResolveName(c.props); got != c.want {
			t.Fatalf("ResolveName(%v) = %q, want %q", c.props, got, c.want)
		}
	}
}

func TestLoad_DropsUnusableFeatures(t *testing.T) {
	s := NewGeometryStore()
	rep := s.Load([]Feature{
		squareFeature("France", 2, 46, 4),
		{Properties: map[string]any{PrimaryNameKey: "Ghost"}},
		{Properties: map[string]any{PrimaryNameKey: "Line"}, Geometry: &Geometry{Type: "LineString"}},
		{Properties: map[string]any{PrimaryNameKey: "Empty"}, Geometry: &Geometry{Type: GeometryPolygon}},
		{Properties: map[string]any{PrimaryNameKey: "NaN"}, Geometry: &Geometry{
			Type:     GeometryPolygon,
			Polygons: []Polygon{{Ring{{math.NaN(), 0}, {1, 1}, {0, 1}}}},
		}},
	})
	if rep.Loaded != 1 || s.Len() != 1 {
		t.Fatalf("expected 1 loaded country, got report=%+v len=%d", rep, s.Len())
	}
	if len(rep.Dropped) != 4 {
		t.Fatalf("expected 4 dropped features, got %d: %v", len(rep.Dropped), rep.Dropped)
	}
	if rep.Dropped[0].Index != 1 || rep.Dropped[0].Name != "Ghost" || rep.Dropped[0].Reason != "missing geometry" {
		t.Fatalf("unexpected first drop %+v", rep.Dropped[0])
	}
}

func TestLoad_MergesDuplicateNames(t *testing.T) {
	s := NewGeometryStore()
	rep := s.Load([]Feature{
		squareFeature("France", 2, 46, 4),
		squareFeature("Spain", -4, 40, 4),
		squareFeature("France", 55, -21, 1), // overseas part
	})
	if rep.Loaded != 2 || rep.Merged != 1 {
		t.Fatalf("expected 2 loaded 1 merged, got %+v", rep)
	}
	fr, ok := s.Country("France")
	if !ok || len(fr.Polygons) != 2 {
		t.Fatalf("expected France with 2 polygons, got %+v", fr)
	}
	if fr.Order() != 0 {
		t.Fatalf("merged country should keep its first position, got %d", fr.Order())
	}
	if fr.PrimaryRing()[0] != (Coord{0, 44}) {
		t.Fatalf("primary ring should be the first feature's outer ring, got %v", fr.PrimaryRing())
	}
}

func TestLoad_MultiPolygonFlattened(t *testing.T) {
	s := NewGeometryStore()
	s.Load([]Feature{{
		Properties: map[string]any{FallbackNameKey: "Islands"},
		Geometry: &Geometry{Type: GeometryMultiPolygon, Polygons: []Polygon{
			{SquareRing(0, 0, 1)},
			{SquareRing(5, 5, 1)},
			{},
		}},
	}})
	c, ok := s.Country("Islands")
	if !ok || len(c.Polygons) != 2 {
		t.Fatalf("expected 2 usable polygons, got %+v", c)
	}
}

func TestLoad_OrderPreserved(t *testing.T) {
	s := NewGeometryStore()
	s.Load([]Feature{squareFeature("B", 0, 0, 1), squareFeature("A", 5, 0, 1), squareFeature("C", 10, 0, 1)})
	ids := s.IDs()
	if len(ids) != 3 || ids[0] != "B" || ids[1] != "A" || ids[2] != "C" {
		t.Fatalf("expected load order B,A,C got %v", ids)
	}
}

func TestSetCapitals_ReportsUnmatched(t *testing.T) {
	s := NewGeometryStore()
	s.Load([]Feature{squareFeature("France", 2, 46, 4)})
	unmatched := s.SetCapitals([]Capital{
		{Name: "France", Lon: 2.35, Lat: 48.85},
		{Name: "Atlantis", Lon: 0, Lat: 0},
	})
	if len(unmatched) != 1 || unmatched[0] != "Atlantis" {
		t.Fatalf("expected Atlantis unmatched, got %v", unmatched)
	}
	fr, _ := s.Country("France")
	if fr.Capital == nil || fr.Capital.Lon() != 2.35 {
		t.Fatalf("expected Paris capital, got %v", fr.Capital)
	}
}

func TestCountry_NilSafe(t *testing.T) {
	var c *Country
	if c.HasGeometry() || c.PrimaryRing() != nil {
		t.Fatal("nil country should report no geometry")
	}
}
