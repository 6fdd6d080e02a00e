package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"optcurve/internal/strategy"
)

// Run is one recorded calculation: the market regime it was priced
// under and the headline curve features.
type Run struct {
	ID             int64
	Market         strategy.Market
	GridSamples    int
	PositionCount  int
	NetPremium     string
	Breakevens     []float64
	MaxProfit      float64
	MaxProfitPrice float64
	MaxLoss        float64
	MaxLossPrice   float64
	ComputedAt     string
}

// SaveRun records a calculation and its legs in one transaction and
// returns the new run id.
func SaveRun(db *sql.DB, run Run, positions []strategy.Position) (int64, error) {
	breakevens, err := json.Marshal(run.Breakevens)
	if err != nil {
		return 0, fmt.Errorf("encoding breakevens: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (spot, risk_free_rate, volatility, days_to_expiry,
		                  grid_samples, position_count, net_premium, breakevens,
		                  max_profit, max_profit_price, max_loss, max_loss_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Market.Spot, run.Market.RiskFreeRate, run.Market.Volatility, run.Market.DaysToExpiry,
		run.GridSamples, len(positions), run.NetPremium, string(breakevens),
		run.MaxProfit, run.MaxProfitPrice, run.MaxLoss, run.MaxLossPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, p := range positions {
		_, err := tx.Exec(`
			INSERT INTO run_positions (run_id, option_type, side, strike, quantity, entry_premium)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, p.Type.String(), p.Side.String(), p.Strike, p.Quantity, p.EntryPremium,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting run position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest recorded runs, newest first.
func RecentRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, spot, risk_free_rate, volatility, days_to_expiry,
		       grid_samples, position_count, net_premium, breakevens,
		       max_profit, max_profit_price, max_loss, max_loss_price, computed_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var breakevens string
		if err := rows.Scan(
			&r.ID, &r.Market.Spot, &r.Market.RiskFreeRate, &r.Market.Volatility, &r.Market.DaysToExpiry,
			&r.GridSamples, &r.PositionCount, &r.NetPremium, &breakevens,
			&r.MaxProfit, &r.MaxProfitPrice, &r.MaxLoss, &r.MaxLossPrice, &r.ComputedAt,
		); err != nil {
			return nil, err
		}
		if breakevens != "" {
			if err := json.Unmarshal([]byte(breakevens), &r.Breakevens); err != nil {
				return nil, fmt.Errorf("decoding breakevens for run %d: %w", r.ID, err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
