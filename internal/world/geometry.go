package world

import (
	"fmt"
	"math"
)

// CountryID is the stable name of a country polygon set.
type CountryID string

// Name property keys, checked in order. Anything else falls back to UnknownName.
const (
	PrimaryNameKey  = "ADMIN"
	FallbackNameKey = "NAME"
	UnknownName     = "Unknown"
)

// Coord is a geographic position as [lon, lat].
type Coord [2]float64

func (c Coord) Lon() float64 { return c[0] }
func (c Coord) Lat() float64 { return c[1] }

// Ring is a closed boundary. The first ring of a polygon is the outer
// boundary, the rest are holes.
type Ring []Coord

// Polygon is an outer ring followed by zero or more holes.
type Polygon []Ring

// GeometryType mirrors the GeoJSON geometry types the store accepts.
type GeometryType string

const (
	GeometryPolygon      GeometryType = "Polygon"
	GeometryMultiPolygon GeometryType = "MultiPolygon"
)

// Geometry is the parsed shape of a feature. A Polygon geometry carries
// exactly one entry in Polygons; a MultiPolygon carries one per part.
type Geometry struct {
	Type     GeometryType
	Polygons []Polygon
}

// Feature is one record handed over by the feature source.
type Feature struct {
	Properties map[string]any
	Geometry   *Geometry
}

// Capital is an optional capital marker for a country.
type Capital struct {
	Name string
	Lon  float64
	Lat  float64
}

// Country is an immutable polygon set keyed by name. Multi-polygon features
// and repeated feature names are flattened into one polygon list.
type Country struct {
	ID       CountryID
	Polygons []Polygon
	Capital  *Coord
	order    int
}

// Order is the insertion position of the country in the loaded feature list.
func (c *Country) Order() int { return c.order }

// PrimaryRing is the outer ring of the first polygon, used for centroids.
func (c *Country) PrimaryRing() Ring {
	if c == nil || len(c.Polygons) == 0 || len(c.Polygons[0]) == 0 {
		return nil
	}
	return c.Polygons[0][0]
}

// HasGeometry reports whether the country has at least one vertex.
func (c *Country) HasGeometry() bool {
	if c == nil {
		return false
	}
	for _, poly := range c.Polygons {
		for _, ring := range poly {
			if len(ring) > 0 {
				return true
			}
		}
	}
	return false
}

// ResolveName picks the display name of a feature: the primary name field,
// then the fallback field, then "Unknown". Non-string and empty values are
// treated as absent.
func ResolveName(props map[string]any) string {
	for _, key := range []string{PrimaryNameKey, FallbackNameKey} {
		if s, ok := props[key].(string); ok && s != "" {
			return s
		}
	}
	return UnknownName
}

// DroppedFeature records a feature the store refused at load time.
type DroppedFeature struct {
	Index  int
	Name   string
	Reason string
}

func (d DroppedFeature) String() string {
	return fmt.Sprintf("feature #%d (%s): %s", d.Index, d.Name, d.Reason)
}

// LoadReport summarises a GeometryStore.Load call.
type LoadReport struct {
	Loaded  int
	Merged  int
	Dropped []DroppedFeature
}

// GeometryStore holds country geometry in load order.
type GeometryStore struct {
	countries []*Country
	byID      map[CountryID]*Country
}

// NewGeometryStore returns an empty store.
func NewGeometryStore() *GeometryStore {
	return &GeometryStore{byID: make(map[CountryID]*Country)}
}

// Load appends features to the store. Features without usable geometry are
// dropped and reported; nothing is returned as an error.
func (s *GeometryStore) Load(features []Feature) LoadReport {
	var rep LoadReport
	for i, f := range features {
		name := ResolveName(f.Properties)
		polys, reason := usablePolygons(f.Geometry)
		if reason != "" {
			rep.Dropped = append(rep.Dropped, DroppedFeature{Index: i, Name: name, Reason: reason})
			continue
		}
		id := CountryID(name)
		if c, ok := s.byID[id]; ok {
			c.Polygons = append(c.Polygons, polys...)
			rep.Merged++
			continue
		}
		c := &Country{ID: id, Polygons: polys, order: len(s.countries)}
		s.countries = append(s.countries, c)
		s.byID[id] = c
		rep.Loaded++
	}
	return rep
}

// usablePolygons keeps the rings that have finite coordinates and returns a
// reason string when nothing usable is left.
func usablePolygons(g *Geometry) ([]Polygon, string) {
	if g == nil {
		return nil, "missing geometry"
	}
	switch g.Type {
	case GeometryPolygon, GeometryMultiPolygon:
	default:
		return nil, fmt.Sprintf("unsupported geometry type %q", g.Type)
	}
	var out []Polygon
	for _, poly := range g.Polygons {
		var kept Polygon
		for _, ring := range poly {
			if len(ring) == 0 || !finiteRing(ring) {
				continue
			}
			kept = append(kept, ring)
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	if len(out) == 0 {
		return nil, "no coordinate rings"
	}
	return out, ""
}

func finiteRing(r Ring) bool {
	for _, c := range r {
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// SetCapitals attaches capital markers by country name and returns the
// names that matched no loaded country.
func (s *GeometryStore) SetCapitals(caps []Capital) []string {
	var unmatched []string
	for _, cp := range caps {
		c, ok := s.byID[CountryID(cp.Name)]
		if !ok || math.IsNaN(cp.Lon) || math.IsNaN(cp.Lat) {
			unmatched = append(unmatched, cp.Name)
			continue
		}
		coord := Coord{cp.Lon, cp.Lat}
		c.Capital = &coord
	}
	return unmatched
}

// Country looks up a country by id.
func (s *GeometryStore) Country(id CountryID) (*Country, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Countries returns the countries in insertion order. Callers must not
// modify the returned geometry.
func (s *GeometryStore) Countries() []*Country {
	return s.countries
}

// IDs returns the country ids in insertion order.
func (s *GeometryStore) IDs() []CountryID {
	ids := make([]CountryID, len(s.countries))
	for i, c := range s.countries {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the number of loaded countries.
func (s *GeometryStore) Len() int {
	return len(s.countries)
}
