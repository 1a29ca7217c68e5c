package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig_EmptyPathIsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Adjacency.Threshold != DefaultAdjacencyThreshold || cfg.HitTest.Strategy != HitVertex {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
adjacency:
  policy: border
  border_epsilon: 0.1
economy:
  gdp_floor: 0
hit_test:
  strategy: polygon
player: France
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Adjacency.Policy != AdjacencyBorder || cfg.Adjacency.BorderEpsilon != 0.1 {
		t.Fatalf("adjacency not loaded: %+v", cfg.Adjacency)
	}
	if cfg.Adjacency.Threshold != DefaultAdjacencyThreshold {
		t.Fatalf("unset threshold should keep default, got %g", cfg.Adjacency.Threshold)
	}
	if cfg.Economy.GDPFloor == nil || *cfg.Economy.GDPFloor != 0 {
		t.Fatalf("expected gdp floor 0, got %v", cfg.Economy.GDPFloor)
	}
	if cfg.Economy.GrowthRate != 1.01 {
		t.Fatalf("unset growth rate should keep default, got %g", cfg.Economy.GrowthRate)
	}
	if cfg.HitTest.Strategy != HitPolygon || cfg.Player != "France" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
view:
  width: -1
adjacency:
  policy: telepathy
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "view size") || !strings.Contains(msg, "telepathy") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "view: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "data", "config.example.yaml"))
	if err != nil {
		t.Fatalf("example config: %v", err)
	}
	if cfg.Player != "France" || cfg.Economy.GDPFloor != nil {
		t.Fatalf("unexpected example config %+v", cfg)
	}
}
