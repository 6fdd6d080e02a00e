package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"optcurve/internal/config"
	"optcurve/internal/curve"
	"optcurve/internal/grid"
	"optcurve/internal/pricing"
	"optcurve/internal/report"
	"optcurve/internal/store"
	"optcurve/internal/strategy"
)

func main() {
	// Parse CLI flags.
	strategyPath := flag.String("strategy", "strategy.toml", "Strategy definition file (TOML)")
	surfaceMode := flag.Bool("surface", false, "Also compute the gamma surface across strikes and expiries")
	noRecord := flag.Bool("no-record", false, "Skip recording the run to the database")
	flag.Parse()

	// Load configuration.
	configPath := "config.toml"
	if p := os.Getenv("OPTCURVE_CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		// Defaults are a complete configuration; a missing file is fine.
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.DefaultConfig()
	}

	// Set up structured logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel),
	})))

	slog.Info("optcurve starting", "strategy_file", *strategyPath)

	// Load the strategy definition.
	sf, err := config.LoadStrategy(*strategyPath)
	if err != nil {
		slog.Error("failed to load strategy", "error", err)
		os.Exit(1)
	}

	positions := make([]strategy.Position, 0, len(sf.Positions))
	for i, pc := range sf.Positions {
		p, err := pc.Position()
		if err != nil {
			slog.Error("invalid position", "index", i, "error", err)
			os.Exit(1)
		}
		positions = append(positions, p)
	}

	mkt := sf.MarketWithDefaults(cfg.Market)
	slog.Info("strategy loaded",
		"positions", len(positions),
		"spot", mkt.Spot,
		"volatility", mkt.Volatility,
		"days_to_expiry", mkt.DaysToExpiry,
	)

	// Build the price grid.
	priceGrid, err := grid.Build(mkt.Spot, cfg.Grid.LowerFactor, cfg.Grid.UpperFactor, cfg.Grid.Samples)
	if err != nil {
		slog.Error("failed to build price grid", "error", err)
		os.Exit(1)
	}

	// Compute strategy metrics.
	engine := strategy.NewEngine(cfg.Engine.Workers)
	metrics, err := engine.ComputeMetrics(context.Background(), positions, priceGrid, mkt)
	if err != nil {
		slog.Error("metrics computation failed", "error", err)
		os.Exit(1)
	}

	summary, err := report.Build(metrics, positions, mkt.Spot)
	if err != nil {
		slog.Error("summary failed", "error", err)
		os.Exit(1)
	}
	report.LogSummary(summary)

	if *surfaceMode {
		runSurface(cfg.Surface, mkt)
	}

	if *noRecord {
		return
	}

	// Record the run.
	database, err := store.Open(cfg.General.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := store.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	runID, err := store.SaveRun(database, store.Run{
		Market:         mkt,
		GridSamples:    len(priceGrid),
		NetPremium:     summary.NetPremium.String(),
		Breakevens:     summary.Breakevens,
		MaxProfit:      summary.MaxProfit.Value,
		MaxProfitPrice: summary.MaxProfit.Price,
		MaxLoss:        summary.MaxLoss.Value,
		MaxLossPrice:   summary.MaxLoss.Price,
	}, positions)
	if err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}

	slog.Info("run recorded", "run_id", runID, "db_path", cfg.General.DBPath)
}

// runSurface evaluates gamma over a strike/expiry cross product and
// logs its shape and peak.
func runSurface(cfg config.SurfaceConfig, mkt strategy.Market) {
	strikes := grid.Linspace(mkt.Spot*cfg.StrikeLower, mkt.Spot*cfg.StrikeUpper, cfg.StrikeSamples)
	days := grid.Linspace(1, float64(mkt.DaysToExpiry)*cfg.MaxDaysFactor, cfg.DaySamples)

	surface, err := pricing.GammaSurface(mkt.Spot, mkt.RiskFreeRate, mkt.Volatility, strikes, days)
	if err != nil {
		slog.Error("gamma surface failed", "error", err)
		return
	}

	var peak float64
	var peakStrike, peakDays float64
	for i, row := range surface {
		maxE, _, err := curve.Extrema(row)
		if err != nil {
			continue
		}
		if maxE.Value > peak {
			peak = maxE.Value
			peakStrike = strikes[maxE.Index]
			peakDays = days[i]
		}
	}

	slog.Info("gamma surface computed",
		"strikes", len(strikes),
		"expiries", len(days),
		"peak_gamma", peak,
		"peak_strike", peakStrike,
		"peak_days", peakDays,
	)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
