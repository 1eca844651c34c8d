package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "graficos" {
		t.Fatalf("output_dir = %q", c.OutputDir)
	}
	if c.WidthIn != 12 || c.HeightIn != 6 {
		t.Fatalf("size = %vx%v, want 12x6", c.WidthIn, c.HeightIn)
	}
	if c.HeatmapCountry != "Brazil" {
		t.Fatalf("heatmap_country = %q", c.HeatmapCountry)
	}
	if len(c.Countries) != len(DefaultCountries) {
		t.Fatalf("countries = %v", c.Countries)
	}
}

func TestSaveThenLoadExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tempviz.yaml")

	c := &Global{
		GlobalFile:     "g.csv",
		CountryFile:    "c.csv",
		OutputDir:      "out",
		WidthIn:        8,
		HeightIn:       4,
		Countries:      []string{"Chile"},
		HeatmapCountry: "Chile",
	}
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.GlobalFile != "g.csv" || got.OutputDir != "out" || got.HeatmapCountry != "Chile" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if len(got.Countries) != 1 || got.Countries[0] != "Chile" {
		t.Fatalf("countries = %v", got.Countries)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TEMPVIZ_OUTPUT_DIR", "from-env")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "from-env" {
		t.Fatalf("output_dir = %q, want from-env", c.OutputDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".tempviz")); err == nil {
		t.Fatalf("Load must not create the default config dir")
	}
}
