package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"optcurve/internal/pricing"
	"optcurve/internal/strategy"
)

// StrategyFile is the runner's input: the legs to evaluate and,
// optionally, the market parameters to price them under. Market fields
// left at zero fall back to the main config's [market] section.
type StrategyFile struct {
	Market    MarketConfig     `toml:"market"`
	Positions []PositionConfig `toml:"positions"`
}

type PositionConfig struct {
	Type     string  `toml:"type"` // "call" or "put"
	Side     string  `toml:"side"` // "long" or "short"
	Strike   float64 `toml:"strike"`
	Quantity int     `toml:"quantity"`
	Premium  float64 `toml:"premium"`
}

// Position converts the record into an engine position.
func (p PositionConfig) Position() (strategy.Position, error) {
	var typ pricing.OptionType
	switch strings.ToLower(p.Type) {
	case "call":
		typ = pricing.Call
	case "put":
		typ = pricing.Put
	default:
		return strategy.Position{}, fmt.Errorf("unknown option type %q", p.Type)
	}

	var side strategy.Side
	switch strings.ToLower(p.Side) {
	case "long":
		side = strategy.Long
	case "short":
		side = strategy.Short
	default:
		return strategy.Position{}, fmt.Errorf("unknown position side %q", p.Side)
	}

	return strategy.Position{
		Type:         typ,
		Side:         side,
		Strike:       p.Strike,
		Quantity:     p.Quantity,
		EntryPremium: p.Premium,
	}, nil
}

// LoadStrategy reads a strategy definition from a TOML file.
func LoadStrategy(path string) (*StrategyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy file: %w", err)
	}

	var sf StrategyFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing strategy file: %w", err)
	}
	if len(sf.Positions) == 0 {
		return nil, fmt.Errorf("strategy file %s defines no positions", path)
	}

	return &sf, nil
}

// MarketWithDefaults returns the file's market snapshot with zero
// fields filled from the defaults.
func (sf *StrategyFile) MarketWithDefaults(def MarketConfig) strategy.Market {
	m := sf.Market
	if m.Spot == 0 {
		m.Spot = def.Spot
	}
	if m.RiskFreeRate == 0 {
		m.RiskFreeRate = def.RiskFreeRate
	}
	if m.Volatility == 0 {
		m.Volatility = def.Volatility
	}
	if m.DaysToExpiry == 0 {
		m.DaysToExpiry = def.DaysToExpiry
	}
	return strategy.Market{
		Spot:         m.Spot,
		RiskFreeRate: m.RiskFreeRate,
		Volatility:   m.Volatility,
		DaysToExpiry: m.DaysToExpiry,
	}
}
