// Package geojson turns GeoJSON country data into world features. Records
// whose geometry cannot be used are dropped and reported, never fatal.
package geojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sunnix1818/geo-countries/internal/world"
)

// ErrNotFeatureCollection is returned when the top-level object is not a
// FeatureCollection.
var ErrNotFeatureCollection = errors.New("not a GeoJSON FeatureCollection")

// MalformedFeatureError describes one dropped record.
type MalformedFeatureError struct {
	Index  int
	Name   string
	Reason string
}

func (e *MalformedFeatureError) Error() string {
	return fmt.Sprintf("feature #%d (%s): %s", e.Index, e.Name, e.Reason)
}

// Result is the outcome of decoding a collection.
type Result struct {
	Features []world.Feature
	Dropped  []*MalformedFeatureError
}

type rawCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type rawFeature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Decode reads a FeatureCollection. Only framing errors are returned; bad
// features end up in Result.Dropped.
func Decode(r io.Reader) (Result, error) {
	var coll rawCollection
	if err := json.NewDecoder(r).Decode(&coll); err != nil {
		return Result{}, fmt.Errorf("decode geojson: %w", err)
	}
	if coll.Type != "FeatureCollection" {
		return Result{}, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, coll.Type)
	}
	var res Result
	for i, raw := range coll.Features {
		f, err := decodeFeature(i, raw)
		if err != nil {
			res.Dropped = append(res.Dropped, err)
			continue
		}
		res.Features = append(res.Features, f)
	}
	return res, nil
}

// LoadFile opens and decodes a GeoJSON file.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open geojson: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func decodeFeature(index int, raw json.RawMessage) (world.Feature, *MalformedFeatureError) {
	var rf rawFeature
	if err := json.Unmarshal(raw, &rf); err != nil {
		return world.Feature{}, &MalformedFeatureError{Index: index, Name: world.UnknownName, Reason: err.Error()}
	}
	name := world.ResolveName(rf.Properties)
	fail := func(reason string) (world.Feature, *MalformedFeatureError) {
		return world.Feature{}, &MalformedFeatureError{Index: index, Name: name, Reason: reason}
	}
	if len(rf.Geometry) == 0 || string(rf.Geometry) == "null" {
		return fail("missing geometry")
	}
	var rg rawGeometry
	if err := json.Unmarshal(rf.Geometry, &rg); err != nil {
		return fail("geometry: " + err.Error())
	}

	geom := &world.Geometry{Type: world.GeometryType(rg.Type)}
	switch geom.Type {
	case world.GeometryPolygon:
		var coords [][][]float64
		if err := json.Unmarshal(rg.Coordinates, &coords); err != nil {
			return fail("polygon coordinates are not an array of rings")
		}
		poly, err := toPolygon(coords)
		if err != nil {
			return fail(err.Error())
		}
		if len(poly) > 0 {
			geom.Polygons = []world.Polygon{poly}
		}
	case world.GeometryMultiPolygon:
		var coords [][][][]float64
		if err := json.Unmarshal(rg.Coordinates, &coords); err != nil {
			return fail("multipolygon coordinates are not an array of polygons")
		}
		for _, pc := range coords {
			poly, err := toPolygon(pc)
			if err != nil {
				return fail(err.Error())
			}
			if len(poly) > 0 {
				geom.Polygons = append(geom.Polygons, poly)
			}
		}
	default:
		return fail(fmt.Sprintf("unsupported geometry type %q", rg.Type))
	}
	if len(geom.Polygons) == 0 {
		return fail("empty coordinates")
	}
	return world.Feature{Properties: rf.Properties, Geometry: geom}, nil
}

func toPolygon(rings [][][]float64) (world.Polygon, error) {
	poly := make(world.Polygon, 0, len(rings))
	for ri, ring := range rings {
		r := make(world.Ring, 0, len(ring))
		for pi, pos := range ring {
			if len(pos) < 2 {
				return nil, fmt.Errorf("ring %d position %d has %d values", ri, pi, len(pos))
			}
			r = append(r, world.Coord{pos[0], pos[1]})
		}
		poly = append(poly, r)
	}
	return poly, nil
}

type rawCapital struct {
	Name *string  `json:"name"`
	Lon  *float64 `json:"lon"`
	Lat  *float64 `json:"lat"`
}

// DecodeCapitals reads a JSON array of {name, lon, lat}. Entries missing a
// field are skipped and counted.
func DecodeCapitals(r io.Reader) ([]world.Capital, int, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode capitals: %w", err)
	}
	var out []world.Capital
	skipped := 0
	for _, msg := range raw {
		var rc rawCapital
		if err := json.Unmarshal(msg, &rc); err != nil || rc.Name == nil || rc.Lon == nil || rc.Lat == nil {
			skipped++
			continue
		}
		out = append(out, world.Capital{Name: *rc.Name, Lon: *rc.Lon, Lat: *rc.Lat})
	}
	return out, skipped, nil
}

// LoadCapitalsFile opens and decodes a capitals file.
func LoadCapitalsFile(path string) ([]world.Capital, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open capitals: %w", err)
	}
	defer f.Close()
	return DecodeCapitals(f)
}
