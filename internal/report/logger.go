package report

import (
	"log/slog"
)

// LogSummary logs the summary as structured JSON.
func LogSummary(s *Summary) {
	slog.Info("=== STRATEGY SUMMARY ===",
		"breakevens", s.Breakevens,
		"max_profit", s.MaxProfit.Value,
		"max_profit_price", s.MaxProfit.Price,
		"max_loss", s.MaxLoss.Value,
		"max_loss_price", s.MaxLoss.Price,
		"net_premium", s.NetPremium.String(),
	)

	slog.Info("greeks at spot",
		"pnl", s.AtSpot.PnL,
		"delta", s.AtSpot.Delta,
		"gamma", s.AtSpot.Gamma,
		"theta", s.AtSpot.Theta,
		"vega", s.AtSpot.Vega,
	)
}
