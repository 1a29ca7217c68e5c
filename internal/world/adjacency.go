package world

//go:generate go tool mockgen -source=adjacency.go -destination=mocks/mock_adjacency.go -package=mocks

import (
	"fmt"
	"math"
	"sort"
)

// Adjacency policy names accepted in config.
const (
	AdjacencyProximity = "proximity"
	AdjacencyBorder    = "border"
)

// Default proximity thresholds in screen units. The alternate value is the
// tighter variant some rule sets use; both are the same rule.
const (
	DefaultAdjacencyThreshold   = 150.0
	AlternateAdjacencyThreshold = 120.0
	DefaultBorderEpsilon        = 0.05
)

// AdjacencyOracle answers whether two countries count as neighbours for
// conquest purposes.
type AdjacencyOracle interface {
	IsAdjacent(a, b CountryID) bool
}

// Centroids caches screen-space centroids and recomputes them whenever the
// viewport revision changes. A centroid is the arithmetic mean of the
// primary ring's vertices, not a true area centroid.
type Centroids struct {
	store    *GeometryStore
	view     *Viewport
	revision uint64
	cache    map[CountryID]Point
}

// NewCentroids creates a centroid cache over store under view.
func NewCentroids(store *GeometryStore, view *Viewport) *Centroids {
	return &Centroids{store: store, view: view}
}

// Get returns the screen centroid of a country, or false when it has no
// primary ring.
func (cs *Centroids) Get(id CountryID) (Point, bool) {
	if cs.cache == nil || cs.revision != cs.view.Revision() {
		cs.rebuild()
	}
	p, ok := cs.cache[id]
	return p, ok
}

func (cs *Centroids) rebuild() {
	cs.cache = make(map[CountryID]Point, cs.store.Len())
	cs.revision = cs.view.Revision()
	for _, c := range cs.store.Countries() {
		ring := c.PrimaryRing()
		if len(ring) == 0 {
			continue
		}
		var sx, sy float64
		for _, v := range ring {
			p := cs.view.ProjectPoint(v)
			sx += p.X
			sy += p.Y
		}
		n := float64(len(ring))
		cs.cache[c.ID] = Point{X: sx / n, Y: sy / n}
	}
}

// ProximityOracle declares two countries adjacent when their screen
// centroids are closer than Threshold. Because it works in screen space the
// answer changes with zoom and pan.
type ProximityOracle struct {
	Centroids *Centroids
	Threshold float64
}

// IsAdjacent implements AdjacencyOracle.
func (o *ProximityOracle) IsAdjacent(a, b CountryID) bool {
	if a == b {
		return false
	}
	ca, ok := o.Centroids.Get(a)
	if !ok {
		return false
	}
	cb, ok := o.Centroids.Get(b)
	if !ok {
		return false
	}
	return ca.Dist(cb) < o.Threshold
}

// BorderGraph is a viewport-independent adjacency graph built once from
// world coordinates: two countries touch when any pair of their vertices
// lies within Epsilon degrees.
type BorderGraph struct {
	Epsilon float64
	edges   map[CountryID]map[CountryID]struct{}
}

type cellKey struct{ x, y int64 }

type cellVertex struct {
	country int
	lon     float64
	lat     float64
}

// NewBorderGraph precomputes the graph. Vertices are bucketed on an
// epsilon-sized grid so only neighbouring cells are compared.
func NewBorderGraph(store *GeometryStore, epsilon float64) *BorderGraph {
	if epsilon <= 0 {
		epsilon = DefaultBorderEpsilon
	}
	g := &BorderGraph{Epsilon: epsilon, edges: make(map[CountryID]map[CountryID]struct{})}
	countries := store.Countries()

	cells := make(map[cellKey][]cellVertex)
	for idx, c := range countries {
		for _, poly := range c.Polygons {
			for _, ring := range poly {
				for _, v := range ring {
					k := cellKey{int64(math.Floor(v.Lon() / epsilon)), int64(math.Floor(v.Lat() / epsilon))}
					cells[k] = append(cells[k], cellVertex{country: idx, lon: v.Lon(), lat: v.Lat()})
				}
			}
		}
	}

	eps2 := epsilon * epsilon
	for k, verts := range cells {
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				other, ok := cells[cellKey{k.x + dx, k.y + dy}]
				if !ok {
					continue
				}
				for _, a := range verts {
					for _, b := range other {
						if a.country == b.country {
							continue
						}
						ddx, ddy := a.lon-b.lon, a.lat-b.lat
						if ddx*ddx+ddy*ddy <= eps2 {
							g.link(countries[a.country].ID, countries[b.country].ID)
						}
					}
				}
			}
		}
	}
	return g
}

func (g *BorderGraph) link(a, b CountryID) {
	if g.edges[a] == nil {
		g.edges[a] = make(map[CountryID]struct{})
	}
	if g.edges[b] == nil {
		g.edges[b] = make(map[CountryID]struct{})
	}
	g.edges[a][b] = struct{}{}
	g.edges[b][a] = struct{}{}
}

// IsAdjacent implements AdjacencyOracle.
func (g *BorderGraph) IsAdjacent(a, b CountryID) bool {
	if a == b {
		return false
	}
	_, ok := g.edges[a][b]
	return ok
}

// Neighbours returns the sorted neighbours of a country.
func (g *BorderGraph) Neighbours(id CountryID) []CountryID {
	out := make([]CountryID, 0, len(g.edges[id]))
	for n := range g.edges[id] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewAdjacencyOracle builds the oracle named by policy.
func NewAdjacencyOracle(policy string, store *GeometryStore, centroids *Centroids, threshold, epsilon float64) (AdjacencyOracle, error) {
	switch policy {
	case "", AdjacencyProximity:
		if threshold <= 0 {
			threshold = DefaultAdjacencyThreshold
		}
		return &ProximityOracle{Centroids: centroids, Threshold: threshold}, nil
	case AdjacencyBorder:
		return NewBorderGraph(store, epsilon), nil
	default:
		return nil, fmt.Errorf("unknown adjacency policy %q", policy)
	}
}
