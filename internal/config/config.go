package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Grid    GridConfig    `toml:"grid"`
	Market  MarketConfig  `toml:"market"`
	Surface SurfaceConfig `toml:"surface"`
	Engine  EngineConfig  `toml:"engine"`
}

type GeneralConfig struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

// GridConfig controls price-grid construction: the evaluation window as
// factors of spot, and the sample count.
type GridConfig struct {
	LowerFactor float64 `toml:"lower_factor"`
	UpperFactor float64 `toml:"upper_factor"`
	Samples     int     `toml:"samples"`
}

// MarketConfig holds the default market parameters, used when a
// strategy file omits its own.
type MarketConfig struct {
	Spot         float64 `toml:"spot"`
	RiskFreeRate float64 `toml:"risk_free_rate"`
	Volatility   float64 `toml:"volatility"`
	DaysToExpiry int     `toml:"days_to_expiry"`
}

// SurfaceConfig controls gamma-surface resolution: strike window as
// factors of spot, and how far past the current expiry the day axis
// extends.
type SurfaceConfig struct {
	StrikeSamples int     `toml:"strike_samples"`
	DaySamples    int     `toml:"day_samples"`
	StrikeLower   float64 `toml:"strike_lower"`
	StrikeUpper   float64 `toml:"strike_upper"`
	MaxDaysFactor float64 `toml:"max_days_factor"`
}

type EngineConfig struct {
	Workers int `toml:"workers"`
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			DBPath:   "./data/optcurve.db",
			LogLevel: "info",
		},
		Grid: GridConfig{
			LowerFactor: 0.7,
			UpperFactor: 1.3,
			Samples:     1000,
		},
		Market: MarketConfig{
			Spot:         100,
			RiskFreeRate: 0.05,
			Volatility:   0.2,
			DaysToExpiry: 30,
		},
		Surface: SurfaceConfig{
			StrikeSamples: 50,
			DaySamples:    20,
			StrikeLower:   0.7,
			StrikeUpper:   1.3,
			MaxDaysFactor: 2,
		},
		Engine: EngineConfig{
			Workers: 1,
		},
	}
}
