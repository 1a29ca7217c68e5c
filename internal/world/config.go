package world

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ViewConfig sizes the projected map and bounds the zoom.
type ViewConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// HitTestConfig selects the pick strategy.
type HitTestConfig struct {
	Strategy string  `yaml:"strategy"` // vertex, capital or polygon
	Radius   float64 `yaml:"radius"`   // screen pixels
}

// AdjacencyConfig selects the neighbour policy.
type AdjacencyConfig struct {
	Policy        string  `yaml:"policy"`         // proximity or border
	Threshold     float64 `yaml:"threshold"`      // screen units, proximity only
	BorderEpsilon float64 `yaml:"border_epsilon"` // degrees, border only
}

// EconomyConfig holds the monthly growth rule and player action costs.
type EconomyConfig struct {
	GrowthRate   float64  `yaml:"growth_rate"`
	ArmyDivisor  float64  `yaml:"army_divisor"`
	RecruitArmy  float64  `yaml:"recruit_army"`
	RecruitCost  float64  `yaml:"recruit_cost"`
	ResearchCost float64  `yaml:"research_cost"`
	StartingGDP  float64  `yaml:"starting_gdp"`
	StartingArmy float64  `yaml:"starting_army"`
	GDPFloor     *float64 `yaml:"gdp_floor"` // nil: spending may drive gdp negative
}

// AutoplayConfig drives the calendar without player input.
type AutoplayConfig struct {
	Enabled       bool    `yaml:"enabled"`
	DaysPerSecond float64 `yaml:"days_per_second"`
}

// Config is the full tuning surface of a world.
type Config struct {
	View      ViewConfig      `yaml:"view"`
	HitTest   HitTestConfig   `yaml:"hit_test"`
	Adjacency AdjacencyConfig `yaml:"adjacency"`
	Economy   EconomyConfig   `yaml:"economy"`
	Autoplay  AutoplayConfig  `yaml:"autoplay"`
	Player    string          `yaml:"player"`
	Seed      int64           `yaml:"seed"`
	Verbose   bool            `yaml:"verbose"`
}

// DefaultConfig returns the stock rules.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			Width:    1280,
			Height:   720,
			MinScale: DefaultMinScale,
			MaxScale: DefaultMaxScale,
		},
		HitTest: HitTestConfig{
			Strategy: HitVertex,
			Radius:   DefaultHitRadius,
		},
		Adjacency: AdjacencyConfig{
			Policy:        AdjacencyProximity,
			Threshold:     DefaultAdjacencyThreshold,
			BorderEpsilon: DefaultBorderEpsilon,
		},
		Economy: EconomyConfig{
			GrowthRate:   1.01,
			ArmyDivisor:  1000,
			RecruitArmy:  50,
			RecruitCost:  100,
			ResearchCost: 200,
			StartingGDP:  1000,
			StartingArmy: 100,
		},
		Autoplay: AutoplayConfig{
			DaysPerSecond: 4,
		},
		Seed: 1,
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no world can run with.
func (c Config) Validate() error {
	var errs []error
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %gx%g", c.View.Width, c.View.Height))
	}
	if c.View.MinScale <= 0 || c.View.MinScale > c.View.MaxScale {
		errs = append(errs, fmt.Errorf("scale limits must satisfy 0 < min <= max, got [%g, %g]", c.View.MinScale, c.View.MaxScale))
	}
	switch c.HitTest.Strategy {
	case HitVertex, HitCapital, HitPolygon:
	default:
		errs = append(errs, fmt.Errorf("unknown hit_test.strategy %q", c.HitTest.Strategy))
	}
	if c.HitTest.Radius < 0 {
		errs = append(errs, fmt.Errorf("hit_test.radius must not be negative"))
	}
	switch c.Adjacency.Policy {
	case AdjacencyProximity, AdjacencyBorder:
	default:
		errs = append(errs, fmt.Errorf("unknown adjacency.policy %q", c.Adjacency.Policy))
	}
	if c.Adjacency.Threshold < 0 || c.Adjacency.BorderEpsilon < 0 {
		errs = append(errs, fmt.Errorf("adjacency distances must not be negative"))
	}
	if c.Economy.ArmyDivisor == 0 {
		errs = append(errs, fmt.Errorf("economy.army_divisor must not be zero"))
	}
	if c.Autoplay.DaysPerSecond < 0 {
		errs = append(errs, fmt.Errorf("autoplay.days_per_second must not be negative"))
	}
	return errors.Join(errs...)
}
