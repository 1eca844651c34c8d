package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultCountries is the country set plotted by the per-country time series
// and distribution charts.
var DefaultCountries = []string{
	"Brazil", "Argentina", "Chile", "Peru", "Colombia",
	"United States", "Canada", "Mexico",
	"China", "India", "Japan", "Russia",
	"Germany", "France", "United Kingdom", "Italy", "Spain",
}

// Global configuration structure.
type Global struct {
	// Input datasets used when --arquivo is not given
	GlobalFile  string `mapstructure:"global_file" yaml:"global_file"`
	CountryFile string `mapstructure:"country_file" yaml:"country_file"`

	// Rendering
	OutputDir string  `mapstructure:"output_dir" yaml:"output_dir"`
	Show      bool    `mapstructure:"show" yaml:"show"`
	WidthIn   float64 `mapstructure:"width_in" yaml:"width_in"`
	HeightIn  float64 `mapstructure:"height_in" yaml:"height_in"`

	// Per-country charts
	Countries      []string `mapstructure:"countries" yaml:"countries"`
	HeatmapCountry string   `mapstructure:"heatmap_country" yaml:"heatmap_country"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tempviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is read into the environment first.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TEMPVIZ")
	v.AutomaticEnv()

	v.SetDefault("global_file", filepath.Join("data", "GlobalTemperatures.csv"))
	v.SetDefault("country_file", filepath.Join("data", "GlobalLandTemperaturesByCountry.csv"))
	v.SetDefault("output_dir", "graficos")
	v.SetDefault("show", false)
	v.SetDefault("width_in", 12.0)
	v.SetDefault("height_in", 6.0)
	v.SetDefault("countries", DefaultCountries)
	v.SetDefault("heatmap_country", "Brazil")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must exist.
		if cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.WidthIn <= 0 {
		c.WidthIn = 12
	}
	if c.HeightIn <= 0 {
		c.HeightIn = 6
	}
	if len(c.Countries) == 0 {
		c.Countries = append([]string(nil), DefaultCountries...)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tempviz"), nil
}
