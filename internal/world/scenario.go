package world

import (
	"fmt"
	"log/slog"
)

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptConfig scenarioOptionKind = iota // view, rules, seed: applied first
	scenarioOptData                             // countries and capitals
)

// ScenarioOption is a builder function applied while assembling a World
// from synthetic data.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*scenario)
}

type scenario struct {
	cfg    Config
	src    Source
	logger *slog.Logger
}

// WithViewSize sets the projected map size in pixels.
func WithViewSize(w, h float64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.View.Width = w
		s.cfg.View.Height = h
	}}
}

// WithSeed sets the nation RNG seed.
func WithSeed(seed int64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.Seed = seed
	}}
}

// WithPlayer chooses the player nation. An unknown name starts landless.
func WithPlayer(name string) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.Player = name
	}}
}

// WithAdjacency selects the adjacency policy and its distance parameter
// (screen threshold for proximity, degrees for border).
func WithAdjacency(policy string, distance float64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.Adjacency.Policy = policy
		if policy == AdjacencyBorder {
			s.cfg.Adjacency.BorderEpsilon = distance
		} else {
			s.cfg.Adjacency.Threshold = distance
		}
	}}
}

// WithHitTest selects the hit-test strategy.
func WithHitTest(strategy string, radius float64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.HitTest.Strategy = strategy
		s.cfg.HitTest.Radius = radius
	}}
}

// WithEconomy replaces the economy rules.
func WithEconomy(ec EconomyConfig) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.Economy = ec
	}}
}

// WithLogger mirrors the event log to logger.
func WithLogger(l *slog.Logger) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.logger = l
	}}
}

// WithVerbose records per-tick economy events.
func WithVerbose(v bool) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(s *scenario) {
		s.cfg.Verbose = v
	}}
}

// WithSquareCountry adds a square Polygon feature of side size degrees
// centred on (lon, lat).
func WithSquareCountry(name string, lon, lat, size float64) ScenarioOption {
	return ScenarioOption{scenarioOptData, func(s *scenario) {
		s.src.Features = append(s.src.Features, Feature{
			Properties: map[string]any{PrimaryNameKey: name},
			Geometry: &Geometry{
				Type:     GeometryPolygon,
				Polygons: []Polygon{{SquareRing(lon, lat, size)}},
			},
		})
	}}
}

// WithFeature adds a raw feature, malformed or not.
func WithFeature(f Feature) ScenarioOption {
	return ScenarioOption{scenarioOptData, func(s *scenario) {
		s.src.Features = append(s.src.Features, f)
	}}
}

// WithCapital adds a capital marker.
func WithCapital(name string, lon, lat float64) ScenarioOption {
	return ScenarioOption{scenarioOptData, func(s *scenario) {
		s.src.Capitals = append(s.src.Capitals, Capital{Name: name, Lon: lon, Lat: lat})
	}}
}

// WithGrid adds a cols x rows grid of square countries named "R<row>C<col>",
// spaced step degrees apart starting at (lon0, lat0).
func WithGrid(cols, rows int, lon0, lat0, step float64) ScenarioOption {
	return ScenarioOption{scenarioOptData, func(s *scenario) {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				name := fmt.Sprintf("R%dC%d", r, c)
				WithSquareCountry(name, lon0+float64(c)*step, lat0-float64(r)*step, step).fn(s)
			}
		}
	}}
}

// SquareRing returns a closed counter-clockwise square ring.
func SquareRing(lon, lat, size float64) Ring {
	h := size / 2
	return Ring{
		{lon - h, lat - h},
		{lon + h, lat - h},
		{lon + h, lat + h},
		{lon - h, lat + h},
		{lon - h, lat - h},
	}
}

// NewScenario assembles a World in two ordered passes:
//  1. Config (view size, rules, seed, player)
//  2. Data (countries, capitals)
//
// It panics on invalid config; scenarios are built by tests and tools with
// known-good options.
func NewScenario(opts ...ScenarioOption) *World {
	s := &scenario{cfg: DefaultConfig()}
	s.cfg.View.Width = 360
	s.cfg.View.Height = 180
	for _, kind := range []scenarioOptionKind{scenarioOptConfig, scenarioOptData} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(s)
			}
		}
	}
	w, err := New(s.cfg, s.src, s.logger)
	if err != nil {
		panic(fmt.Sprintf("scenario: %v", err))
	}
	return w
}
